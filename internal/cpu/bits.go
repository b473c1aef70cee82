package cpu

// Small pure helpers over bytes. They carry no CPU state so the ALU and the
// CB decoder can share them.

func bit(v byte, n byte) bool { return v&(1<<n) != 0 }

func setBit(v byte, n byte) byte { return v | 1<<n }

func resetBit(v byte, n byte) byte { return v &^ (1 << n) }

func boolBit(b bool) byte {
	if b {
		return 1
	}
	return 0
}
