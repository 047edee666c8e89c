package statemachine

import (
	"context"
	"testing"

	"github.com/jrmoura/frota-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractLifecycle(t *testing.T) {
	ctx := context.Background()
	contract := &models.FuelContract{Status: models.ContractStatusInactive}

	csm := NewContractFSM(contract)
	require.NoError(t, csm.Activate(ctx))
	assert.Equal(t, models.ContractStatusActive, contract.Status)

	require.NoError(t, csm.Deactivate(ctx))
	assert.Equal(t, models.ContractStatusInactive, contract.Status)

	// Only active contracts expire
	assert.Error(t, csm.Expire(ctx))

	require.NoError(t, csm.Activate(ctx))
	require.NoError(t, csm.Expire(ctx))
	assert.Equal(t, models.ContractStatusExpired, contract.Status)
}

func TestExpiredIsTerminal(t *testing.T) {
	ctx := context.Background()
	contract := &models.FuelContract{Status: models.ContractStatusExpired}

	csm := NewContractFSM(contract)
	assert.Error(t, csm.Activate(ctx))
	assert.Error(t, csm.Deactivate(ctx))
	assert.Error(t, csm.Expire(ctx))
	assert.Equal(t, models.ContractStatusExpired, contract.Status)
}
