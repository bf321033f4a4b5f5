package puzzle

import (
	"context"
	"errors"
	"time"

	"github.com/ABMatrix/snarkVM/internal/profiling"
	"github.com/ABMatrix/snarkVM/internal/zlog"
)

// Mine drives a host-owned outer nonce loop: the core engine itself never
// sleeps or retries, so this is the thin loop a CLI or miner service
// wraps around ProveWithTarget, starting at startNonce and incrementing
// until either a solution is found or ctx is canceled. If recorder is
// non-nil, every attempt (hit or miss) is logged into it for later
// offline inspection.
func Mine(ctx context.Context, p *Puzzle, epoch *EpochChallenge, address [32]byte, proofTarget uint64, startNonce uint64, recorder *profiling.Recorder) (*ProverSolution, error) {
	if !p.IsProver() {
		return nil, wrapErr(ErrWrongRole, "mine requires a prover handle")
	}

	for nonce := startNonce; ; nonce++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		attemptStart := time.Now()
		solution, err := p.ProveWithTarget(epoch, address, nonce, proofTarget)
		elapsed := time.Since(attemptStart)

		if recorder != nil {
			recorder.RecordAttempt("miner", elapsed, err == nil)
		}

		switch {
		case err == nil:
			return solution, nil
		case errors.Is(err, ErrDifficultyNotMet):
			continue
		default:
			zlog.Logger().Error().Err(err).Uint64("nonce", nonce).Msg("coinbase puzzle: mining attempt failed")
			return nil, err
		}
	}
}
