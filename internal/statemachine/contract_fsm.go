package statemachine

import (
	"context"
	"fmt"

	"github.com/jrmoura/frota-api/internal/models"
	"github.com/looplab/fsm"
)

// ContractFSM wraps a fuel contract with its activation state machine.
// Expired is terminal: a contract whose period ended is reissued, never
// reactivated.
type ContractFSM struct {
	contract *models.FuelContract
	fsm      *fsm.FSM
}

// NewContractFSM creates a new fuel contract state machine
func NewContractFSM(contract *models.FuelContract) *ContractFSM {
	cfsm := &ContractFSM{
		contract: contract,
	}

	cfsm.fsm = fsm.NewFSM(
		contract.Status,
		fsm.Events{
			// inactive → active
			{Name: "activate", Src: []string{models.ContractStatusInactive}, Dst: models.ContractStatusActive},

			// active → inactive (explicit edit)
			{Name: "deactivate", Src: []string{models.ContractStatusActive}, Dst: models.ContractStatusInactive},

			// active → expired (sweep)
			{Name: "expire", Src: []string{models.ContractStatusActive}, Dst: models.ContractStatusExpired},
		},
		fsm.Callbacks{},
	)

	return cfsm
}

// Activate transitions the contract to active state
func (c *ContractFSM) Activate(ctx context.Context) error {
	if !c.contract.MayActivate() {
		return fmt.Errorf("contract cannot be activated in current state: %s", c.contract.Status)
	}

	if err := c.fsm.Event(ctx, "activate"); err != nil {
		return fmt.Errorf("failed to activate contract: %w", err)
	}

	c.contract.Status = c.fsm.Current()
	return nil
}

// Deactivate transitions the contract to inactive state
func (c *ContractFSM) Deactivate(ctx context.Context) error {
	if !c.contract.MayDeactivate() {
		return fmt.Errorf("contract cannot be deactivated in current state: %s", c.contract.Status)
	}

	if err := c.fsm.Event(ctx, "deactivate"); err != nil {
		return fmt.Errorf("failed to deactivate contract: %w", err)
	}

	c.contract.Status = c.fsm.Current()
	return nil
}

// Expire transitions the contract to expired state
func (c *ContractFSM) Expire(ctx context.Context) error {
	if !c.contract.MayExpire() {
		return fmt.Errorf("contract cannot be expired in current state: %s", c.contract.Status)
	}

	if err := c.fsm.Event(ctx, "expire"); err != nil {
		return fmt.Errorf("failed to expire contract: %w", err)
	}

	c.contract.Status = c.fsm.Current()
	return nil
}

// Current returns the current state
func (c *ContractFSM) Current() string {
	return c.fsm.Current()
}

// Can checks if a transition is possible
func (c *ContractFSM) Can(event string) bool {
	return c.fsm.Can(event)
}
