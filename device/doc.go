// Package device defines the parallel evaluator capability the enumeration
// engine depends on, and a CPU implementation of it.
//
// The contract mirrors a GPU compute queue:
//
//	Backend.Devices            — platform / device discovery
//	Backend.Open               — build the fixed kernel, allocate and bind buffers
//	Device.PreferredWorkGroupSize
//	Device.Write               — host → device accumulator transfer
//	Device.Dispatch            — blocking dispatch-and-wait over (global, local)
//	Device.Read                — device → host accumulator transfer
//	Device.Close               — release everything
//
// The kernel is fixed: for every index in the dispatched range it classifies
// the function and, when monotonic, atomically increments the monotonic
// counter, the dual counter (self-dual functions) and the histogram bucket of
// the function's weight, in place, on the bound buffers.
//
// CPUBackend runs one goroutine per work-group (bounded by the worker count)
// via errgroup; each worker owns a monotone.Evaluator as its local memory.
package device
