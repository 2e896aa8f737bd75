package ants

import "math"

type Result struct {
	path   Path
	length float64
}

func NewResult(path Path, length float64) Result {
	return Result{path: path, length: length}
}

func NewEmptyResult() Result {
	return Result{length: math.Inf(1)}
}

func (r *Result) BetterThan(o Result) bool {
	return r.length < o.length
}

func (r *Result) Path() Path {
	return r.path
}

func (r *Result) Length() float64 {
	return r.length
}

func (r *Result) Empty() bool {
	return r.path.Size() == 0
}
