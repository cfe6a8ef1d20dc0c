package simd

import "golang.org/x/sys/cpu"

// Caps reports which CPU features are available on the current machine.
// re2vm's scanning primitives in this package are portable Go (SWAR)
// implementations and do not consult Caps. Nothing else in this module
// reads Caps or Detected either; they only report what the CPU offers.
type Caps struct {
	HasSSE2   bool
	HasSSE42  bool
	HasAVX2   bool
	HasPOPCNT bool
}

// Detected holds the capabilities of the running CPU, computed once at
// package initialization.
var Detected = Caps{
	HasSSE2:   cpu.X86.HasSSE2,
	HasSSE42:  cpu.X86.HasSSE42,
	HasAVX2:   cpu.X86.HasAVX2,
	HasPOPCNT: cpu.X86.HasPOPCNT,
}
