// Package topology composes router dispatches into network-level actions.
// None of the operations retry or roll back: the first failing dispatch
// aborts the operation and earlier steps stay applied.
package topology

import (
	"context"
	"fmt"
	"strconv"

	"github.com/leffw/torch-cli/internal/router"
)

// ConfirmationBlocks are mined after opening a channel so the funding
// transaction confirms.
const ConfirmationBlocks = 3

// FaucetFeeRate is the sat/vB fee rate used by Faucet.
const FaucetFeeRate = 25

const satsPerCoin = 100_000_000

// Dispatcher runs raw commands on named nodes.
type Dispatcher interface {
	Dispatch(ctx context.Context, name, raw string, mode router.Mode) (*router.Result, error)
}

// Operator runs topology operations against a fleet whose backend node is
// named Backend.
type Operator struct {
	Router  Dispatcher
	Backend string
}

func New(r Dispatcher, backend string) *Operator {
	return &Operator{Router: r, Backend: backend}
}

// Connect makes from open a peer connection to the first advertised URI of to.
func (o *Operator) Connect(ctx context.Context, from, to string) error {
	info, err := o.getinfo(ctx, to)
	if err != nil {
		return err
	}

	uris, _ := info["uris"].([]any)
	if len(uris) == 0 {
		return fmt.Errorf("%w: %s advertises no uris", router.ErrMalformedResponse, to)
	}
	uri, ok := uris[0].(string)
	if !ok || uri == "" {
		return fmt.Errorf("%w: %s uris[0] is not a string", router.ErrMalformedResponse, to)
	}

	_, err = o.Router.Dispatch(ctx, from, "connect "+uri, router.Interactive)
	return err
}

// OpenChannel opens a channel of amount satoshis from from to to, then mines
// ConfirmationBlocks blocks on the backend.
func (o *Operator) OpenChannel(ctx context.Context, from, to string, amount int64) error {
	info, err := o.getinfo(ctx, to)
	if err != nil {
		return err
	}

	pubkey, ok := info["identity_pubkey"].(string)
	if !ok || pubkey == "" {
		return fmt.Errorf("%w: %s has no identity_pubkey", router.ErrMalformedResponse, to)
	}

	raw := fmt.Sprintf("openchannel %s %d", pubkey, amount)
	if _, err := o.Router.Dispatch(ctx, from, raw, router.Interactive); err != nil {
		return err
	}
	return o.Mine(ctx, ConfirmationBlocks)
}

// Mine generates nblock blocks on the backend.
func (o *Operator) Mine(ctx context.Context, nblock int) error {
	if nblock <= 0 {
		return fmt.Errorf("block count must be positive, got %d", nblock)
	}
	_, err := o.Router.Dispatch(ctx, o.Backend, "-generate "+strconv.Itoa(nblock), router.Interactive)
	return err
}

// Faucet sends amount satoshis from the backend wallet to address.
func (o *Operator) Faucet(ctx context.Context, address string, amount int64) error {
	if address == "" {
		return fmt.Errorf("address is empty")
	}
	coins, err := FormatAmount(amount)
	if err != nil {
		return err
	}
	raw := fmt.Sprintf("-named sendtoaddress address=%s amount=%s fee_rate=%d", address, coins, FaucetFeeRate)
	_, err = o.Router.Dispatch(ctx, o.Backend, raw, router.Interactive)
	return err
}

// FormatAmount renders satoshis as BTC with exactly eight decimals.
func FormatAmount(sats int64) (string, error) {
	if sats < 0 {
		return "", fmt.Errorf("amount must not be negative, got %d", sats)
	}
	return fmt.Sprintf("%d.%08d", sats/satsPerCoin, sats%satsPerCoin), nil
}

func (o *Operator) getinfo(ctx context.Context, name string) (map[string]any, error) {
	res, err := o.Router.Dispatch(ctx, name, "getinfo", router.Captured)
	if err != nil {
		return nil, err
	}
	return res.Object()
}
