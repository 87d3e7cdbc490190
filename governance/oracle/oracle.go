// Package oracle supplies the block height and on-chain randomness a raffle
// needs, against a real Ethereum RPC endpoint or a deterministic fake for
// tests.
package oracle

import (
	"context"
	"fmt"
	"math/big"

	"github.com/yearn/robokitty-sub000/governance/domain"
)

// Oracle is the capability a raffle creation workflow needs from a
// block-randomness source: the current chain height, and the randomness
// value (e.g. a beacon/PREVRANDAO-derived seed) at a given block.
type Oracle interface {
	CurrentBlock(ctx context.Context) (uint64, error)
	RandomnessAt(ctx context.Context, block uint64) (string, error)
}

// RaffleRandomness bundles the three values a raffle needs to start
// waiting: the block it was initiated at, the target block blockOffset
// later, and that target block's randomness once it has been mined.
func RaffleRandomness(ctx context.Context, o Oracle, blockOffset uint64) (initiationBlock, targetBlock uint64, randomness string, err error) {
	initiationBlock, err = o.CurrentBlock(ctx)
	if err != nil {
		return 0, 0, "", domain.OracleFailure("oracle.RaffleRandomness", "reading current block: %v", err)
	}
	targetBlock = initiationBlock + blockOffset
	randomness, err = o.RandomnessAt(ctx, targetBlock)
	if err != nil {
		return 0, 0, "", domain.OracleFailure("oracle.RaffleRandomness", "reading randomness at block %d: %v", targetBlock, err)
	}
	return initiationBlock, targetBlock, randomness, nil
}

// EVMClient is the narrow subset of an Ethereum RPC client this package
// needs. HeaderByNumber returns this package's Header rather than
// go-ethereum's types.Header, so *ethclient.Client does not satisfy it
// directly; it needs a thin wrapper that copies the header's MixDigest.
type EVMClient interface {
	BlockNumber(ctx context.Context) (uint64, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*Header, error)
}

// Header is the subset of a block header this package reads randomness
// from.
type Header struct {
	MixDigest [32]byte
}

// ChainOracle implements Oracle against a live Ethereum RPC endpoint,
// deriving randomness from each block's MixDigest (the post-merge
// PREVRANDAO value).
type ChainOracle struct {
	client EVMClient
}

// NewChainOracle wraps an EVM RPC client as an Oracle.
func NewChainOracle(client EVMClient) *ChainOracle {
	return &ChainOracle{client: client}
}

func (c *ChainOracle) CurrentBlock(ctx context.Context) (uint64, error) {
	if c == nil || c.client == nil {
		return 0, fmt.Errorf("chain oracle not initialised")
	}
	block, err := c.client.BlockNumber(ctx)
	if err != nil {
		return 0, domain.OracleFailure("ChainOracle.CurrentBlock", "fetch block number: %v", err)
	}
	return block, nil
}

func (c *ChainOracle) RandomnessAt(ctx context.Context, block uint64) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("chain oracle not initialised")
	}
	header, err := c.client.HeaderByNumber(ctx, new(big.Int).SetUint64(block))
	if err != nil {
		return "", domain.OracleFailure("ChainOracle.RandomnessAt", "fetch header for block %d: %v", block, err)
	}
	return fmt.Sprintf("%x", header.MixDigest), nil
}
