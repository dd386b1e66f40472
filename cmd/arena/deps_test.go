package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-arena/internal/clients/external"
	externalmock "github.com/KirkDiggler/rpg-arena/internal/clients/external/mock"
	"github.com/KirkDiggler/rpg-arena/internal/config"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/runs"
)

func TestIssueWeapon_StandardTable(t *testing.T) {
	w, err := issueWeapon(context.Background(), &config.Config{}, " Spear ", 2)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, "spear", w.Key)
	assert.Equal(t, "1d6", w.Damage.String())
	assert.Equal(t, 2, w.Bonus)

	none, err := issueWeapon(context.Background(), &config.Config{}, "", 0)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestLookupWeapon(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := externalmock.NewMockClient(ctrl)
	ctx := context.Background()

	client.EXPECT().GetWeaponData(ctx, "greataxe").Return(&external.WeaponData{
		ID: "greataxe", Name: "Greataxe", Category: "Martial", Range: "Melee", DamageDice: "1d12", Weight: 7,
	}, nil)

	w, err := lookupWeapon(ctx, client, "greataxe", 1)
	require.NoError(t, err)
	assert.Equal(t, "Greataxe", w.Name)
	assert.Equal(t, "1d12", w.Damage.String())
	assert.Equal(t, 1, w.Bonus)
}

func TestLookupWeapon_Rejects(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := externalmock.NewMockClient(ctrl)
	ctx := context.Background()

	client.EXPECT().GetWeaponData(ctx, "longbow").Return(&external.WeaponData{
		ID: "longbow", Name: "Longbow", Range: "Ranged", DamageDice: "1d8",
	}, nil)
	_, err := lookupWeapon(ctx, client, "longbow", 0)
	assert.True(t, errors.IsInvalidArgument(err))

	client.EXPECT().GetWeaponData(ctx, "vorpal").Return(nil, errors.NotFound("vorpal is not a weapon"))
	_, err = lookupWeapon(ctx, client, "vorpal", 0)
	assert.True(t, errors.IsNotFound(err))
}

func TestOpenRuns_Memory(t *testing.T) {
	repo, release, err := openRuns(&config.Config{Store: config.StoreMemory})
	require.NoError(t, err)
	defer release()
	_, ok := repo.(*runs.InMemoryRepository)
	assert.True(t, ok)
}
