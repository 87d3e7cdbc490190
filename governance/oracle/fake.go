package oracle

import "context"

// Fake is a deterministic Oracle for tests: CurrentBlock advances through a
// fixed sequence (holding on the last entry), RandomnessAt always returns
// the configured value regardless of which block is asked for.
type Fake struct {
	Blocks     []uint64
	Randomness string

	call int
}

func (f *Fake) CurrentBlock(ctx context.Context) (uint64, error) {
	if len(f.Blocks) == 0 {
		return 0, nil
	}
	block := f.Blocks[f.call]
	if f.call < len(f.Blocks)-1 {
		f.call++
	}
	return block, nil
}

func (f *Fake) RandomnessAt(ctx context.Context, block uint64) (string, error) {
	return f.Randomness, nil
}
