package ecs

import "testing"

func BenchmarkCreate(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w := NewWorld()
		for j := 0; j < 10_000; j++ {
			w.Create()
		}
	}
}

func BenchmarkCreateN(b *testing.B) {
	buf := make([]Entity, 10_000)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w := NewWorld()
		w.CreateN(buf)
	}
}

func BenchmarkDestroy(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		w := NewWorld()
		populate(w, 10_000)
		b.StartTimer()
		w.Each(w.Destroy)
	}
}

func benchWorld(n int) *World {
	w := NewWorld()
	for i := 0; i < n; i++ {
		e := w.Create()
		Assign(w, e, position{})
		if i%2 == 0 {
			Assign(w, e, velocity{})
		}
	}
	return w
}

func BenchmarkIterateSingle(b *testing.B) {
	w := benchWorld(100_000)
	v := NewView1[position](w.Registry())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v.Each(func(_ Entity, p *position) { p.X++ })
	}
}

func BenchmarkIterateTwo(b *testing.B) {
	w := benchWorld(100_000)
	v := NewView2[position, velocity](w.Registry())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v.Each(func(_ Entity, p *position, vel *velocity) {
			p.X += vel.X
		})
	}
}

func BenchmarkIterateRuntime(b *testing.B) {
	w := benchWorld(100_000)
	ids := []TypeID{Type[position](), Type[velocity]()}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		n := 0
		w.RuntimeView(ids...).Each(func(Entity) { n++ })
	}
}
