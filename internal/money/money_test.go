package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_SubSaturates(t *testing.T) {
	t.Run("normal subtraction", func(t *testing.T) {
		a := FromFloat(100)
		b := FromFloat(30)
		assert.True(t, a.Sub(b).Equal(FromFloat(70)))
	})

	t.Run("subtraction below zero floors at zero", func(t *testing.T) {
		a := FromFloat(30)
		b := FromFloat(100)
		assert.True(t, a.Sub(b).IsZero())
	})

	t.Run("subtracting from zero stays zero", func(t *testing.T) {
		assert.True(t, Zero.Sub(FromFloat(500)).IsZero())
	})
}

func TestAmount_Constructors(t *testing.T) {
	t.Run("negative decimal floors at zero", func(t *testing.T) {
		a := New(decimal.NewFromFloat(-12.5))
		assert.True(t, a.IsZero())
	})

	t.Run("negative float floors at zero", func(t *testing.T) {
		assert.True(t, FromFloat(-1).IsZero())
	})

	t.Run("negative string is rejected", func(t *testing.T) {
		_, err := FromString("-5")
		assert.Error(t, err)
	})

	t.Run("garbage string is rejected", func(t *testing.T) {
		_, err := FromString("five hundred")
		assert.Error(t, err)
	})

	t.Run("valid string parses", func(t *testing.T) {
		a, err := FromString("1250.75")
		require.NoError(t, err)
		assert.Equal(t, "1250.75", a.String())
	})
}

func TestAmount_Min(t *testing.T) {
	a := FromFloat(20)
	b := FromFloat(80)
	assert.True(t, a.Min(b).Equal(a))
	assert.True(t, b.Min(a).Equal(a))
	assert.True(t, a.Min(a).Equal(a))
}

func TestAmount_ScanValue(t *testing.T) {
	t.Run("scan numeric string", func(t *testing.T) {
		var a Amount
		require.NoError(t, a.Scan("350.00"))
		assert.True(t, a.Equal(FromFloat(350)))
	})

	t.Run("scan bytes", func(t *testing.T) {
		var a Amount
		require.NoError(t, a.Scan([]byte("75")))
		assert.True(t, a.Equal(FromFloat(75)))
	})

	t.Run("negative column value floors at zero", func(t *testing.T) {
		var a Amount
		require.NoError(t, a.Scan("-10"))
		assert.True(t, a.IsZero())
	})
}

func TestAmount_JSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		a := FromFloat(199.99)
		data, err := json.Marshal(a)
		require.NoError(t, err)

		var back Amount
		require.NoError(t, json.Unmarshal(data, &back))
		assert.True(t, a.Equal(back))
	})

	t.Run("negative json is rejected", func(t *testing.T) {
		var a Amount
		assert.Error(t, json.Unmarshal([]byte(`"-3"`), &a))
	})
}
