package carrier_test

import (
	"errors"
	"testing"

	"github.com/devacc8/cybership-carrier-service/pkg/carrier"
	"github.com/devacc8/cybership-carrier-service/pkg/carrier/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	registry := carrier.NewRegistry()

	registry.Register(mock.New(carrier.CarrierUPS))

	got, err := registry.Get(carrier.CarrierUPS)
	require.NoError(t, err, "carrier should be registered")
	assert.Equal(t, carrier.CarrierUPS, got.Code())
}

func TestRegistry_Register_Override(t *testing.T) {
	registry := carrier.NewRegistry()

	first := mock.New(carrier.CarrierUPS)
	registry.Register(first)
	assert.Equal(t, 1, registry.Count())

	// Registering again with the same code overwrites, last write wins
	second := mock.New(carrier.CarrierUPS)
	registry.Register(second)
	assert.Equal(t, 1, registry.Count())

	got, err := registry.Get(carrier.CarrierUPS)
	require.NoError(t, err)
	assert.Same(t, second, got)
}

func TestRegistry_Get_NotFound(t *testing.T) {
	registry := carrier.NewRegistry()

	_, err := registry.Get(carrier.CarrierFedEx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, carrier.NewCarrierError(carrier.ErrCodeCarrierNotFound, "")))
}

func TestRegistry_All(t *testing.T) {
	registry := carrier.NewRegistry()

	registry.Register(mock.New(carrier.CarrierUPS))
	registry.Register(mock.New(carrier.CarrierFedEx))
	registry.Register(mock.New(carrier.CarrierUSPS))

	assert.Len(t, registry.All(), 3)
}

func TestRegistry_Codes(t *testing.T) {
	registry := carrier.NewRegistry()

	registry.Register(mock.New(carrier.CarrierUPS))
	registry.Register(mock.New(carrier.CarrierDHL))

	codes := registry.Codes()
	assert.Len(t, codes, 2)
	assert.Contains(t, codes, carrier.CarrierUPS)
	assert.Contains(t, codes, carrier.CarrierDHL)
}

func TestRegistry_Count(t *testing.T) {
	registry := carrier.NewRegistry()
	assert.Equal(t, 0, registry.Count())

	registry.Register(mock.New(carrier.CarrierUPS))
	assert.Equal(t, 1, registry.Count())

	registry.Register(mock.New(carrier.CarrierFedEx))
	assert.Equal(t, 2, registry.Count())
}
