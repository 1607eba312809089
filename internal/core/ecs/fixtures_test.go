package ecs

type position struct{ X, Y float64 }
type velocity struct{ X, Y float64 }
type value struct{ V int }
type marker struct{}

// Types used by exactly one test so the "never registered" case stays true
// no matter which tests ran first.
type neverAssigned struct{ N int }
