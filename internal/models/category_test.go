package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBedCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    BedCategory
		wantErr bool
	}{
		{"normal", BedNormal, false},
		{"hicu", BedHICU, false},
		{"icu", BedICU, false},
		{"ventilator", BedVentilator, false},
		{"", "", true},
		{"NORMAL", "", true},
		{"oxygen", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBedCategory(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBedCategory_Column(t *testing.T) {
	for _, category := range BedCategories {
		col, err := category.Column()
		require.NoError(t, err)
		assert.NotEmpty(t, col)
	}

	_, err := BedCategory("oxygen").Column()
	require.Error(t, err)
}

func TestHospital_AvailableBeds(t *testing.T) {
	h := &Hospital{
		NormalBeds:     10,
		HICUBeds:       5,
		ICUBeds:        3,
		VentilatorBeds: 2,
	}

	assert.Equal(t, 10, h.AvailableBeds(BedNormal))
	assert.Equal(t, 5, h.AvailableBeds(BedHICU))
	assert.Equal(t, 3, h.AvailableBeds(BedICU))
	assert.Equal(t, 2, h.AvailableBeds(BedVentilator))
	assert.Equal(t, 0, h.AvailableBeds(BedCategory("oxygen")))
	assert.Equal(t, 20, h.TotalAvailable())
}
