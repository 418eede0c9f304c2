package fees_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propertyos/rentledger/pkg/domain"
	"github.com/propertyos/rentledger/pkg/domain/fees"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeFee(t *testing.T) {
	cases := []struct {
		name string
		base string
		rate string
		want string
	}{
		{"ten percent of rent", "50000", "10", "5000"},
		{"three percent cashout fee", "50000", "3", "1500"},
		{"rounds half up", "100.05", "2.5", "2.5"},
		{"rounds half up at the boundary", "0.50", "5", "0.03"},
		{"zero rate", "50000", "0", "0"},
		{"full rate", "1234.56", "100", "1234.56"},
		{"zero base", "0", "10", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := fees.ComputeFee(d(tc.base), d(tc.rate))
			require.NoError(t, err)
			assert.True(t, got.Equal(d(tc.want)), "got %s, want %s", got, tc.want)
		})
	}
}

func TestComputeFee_RejectsNegativeBase(t *testing.T) {
	_, err := fees.ComputeFee(d("-1"), d("10"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestComputeFee_RejectsRateOutOfRange(t *testing.T) {
	_, err := fees.ComputeFee(d("100"), d("-1"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = fees.ComputeFee(d("100"), d("100.01"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSchedule_Percentage(t *testing.T) {
	fee, net, err := fees.Percentage(d("10")).Apply(d("50000"))
	require.NoError(t, err)
	assert.True(t, fee.Equal(d("5000")))
	assert.True(t, net.Equal(d("45000")))
	assert.True(t, fee.Add(net).Equal(d("50000")), "fee and net must sum to the base")
}

func TestSchedule_Flat(t *testing.T) {
	fee, net, err := fees.FlatAmount(d("25")).Apply(d("500"))
	require.NoError(t, err)
	assert.True(t, fee.Equal(d("25")))
	assert.True(t, net.Equal(d("475")))
}

func TestSchedule_FlatExceedingBase(t *testing.T) {
	_, _, err := fees.FlatAmount(d("501")).Apply(d("500"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSchedule_UnknownType(t *testing.T) {
	_, _, err := fees.Schedule{Type: "tiered"}.Apply(d("500"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSchedule_NetIsExactComplement(t *testing.T) {
	// Amounts with repeating decimal shares must still conserve exactly.
	base := d("1000.01")
	fee, net, err := fees.Percentage(d("3.33")).Apply(base)
	require.NoError(t, err)
	assert.True(t, fee.Add(net).Equal(base))
	assert.Equal(t, int32(-2), fee.Exponent())
}
