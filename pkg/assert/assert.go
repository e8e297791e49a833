package assert

import (
	"fmt"
	"reflect"
	"runtime"
)

// NotNil panics when object is nil, including typed nil values.
func NotNil(object interface{}, what string) {
	if IsNil(object) {
		panic(fmt.Errorf("%s must not be nil", what))
	}
}

// NotCircular detects circular dependency in singleton initialisation by
// inspecting current goroutine call stack; it panics if the same function
// appears twice in a row.
func NotCircular() {
	pc := make([]uintptr, 100)
	n := runtime.Callers(2, pc)
	frames := runtime.CallersFrames(pc[:n])

	current, more := frames.Next()
	for more {
		next, m := frames.Next()
		more = m
		if current.Function == next.Function {
			panic("found circular dependency")
		}
		current = next
	}
}

// IsNil reports whether object is nil, handling typed nil values.
func IsNil(object interface{}) bool {
	if object == nil {
		return true
	}
	value := reflect.ValueOf(object)
	switch value.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Slice, reflect.Func, reflect.Interface:
		return value.IsNil()
	}
	return false
}
