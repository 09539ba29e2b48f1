package codec

import "golang.org/x/sys/cpu"

// cpuSupportsAccelerated reports whether this process should use
// acceleratedEngine. The byte-table path benefits from the same cache
// behavior BMI2-class CPUs are built for, so it is gated on the same
// feature flag a true PDEP/PEXT implementation would require; on
// non-x86 architectures cpu.X86 is the zero value and this always
// returns false, falling back to the portable engine.
func cpuSupportsAccelerated() bool {
	return cpu.X86.HasBMI2
}
