package trajectory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupFreeFamily(t *testing.T) {
	tests := []struct {
		name string
		want FreeParams
	}{
		{"free1", FreeParams{DeltaTheta: -15.0, DeltaPhi: 45.0, DeltaRadius: 1.6}},
		{"free2", FreeParams{XOffset: -0.05, DeltaPhi: -60.0, DeltaRadius: 1.0}},
		{"free3", FreeParams{XOffset: -0.25, DeltaRadius: 1.7}},
		{"free4", FreeParams{DeltaTheta: -15.0, DeltaPhi: -60.0, DeltaRadius: 0.75}},
		{"free5", FreeParams{DeltaTheta: -15.0, DeltaPhi: -120.0, DeltaRadius: 1.6}},
		{"orbit", FreeParams{DeltaPhi: -360.0, DeltaRadius: 1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arch, err := Lookup(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.name, arch.Name)
			assert.Equal(t, FamilyFree, arch.Family)
			assert.Equal(t, tt.want, arch.Free)
			assert.Empty(t, arch.Swing.Phis)
			assert.NotEmpty(t, arch.Description)
		})
	}
}

func TestLookupSwingFamily(t *testing.T) {
	arch, err := Lookup("swing1")
	require.NoError(t, err)
	assert.Equal(t, FamilySwing1, arch.Family)
	assert.Equal(t, []float64{0, -5, -25, -30, -20, -8, 0}, arch.Swing.Phis)
	assert.Len(t, arch.Swing.Thetas, 13)
	assert.Equal(t, []float64{0, 0.2}, arch.Swing.Radii)

	arch, err = Lookup("swing2")
	require.NoError(t, err)
	assert.Equal(t, FamilySwing2, arch.Family)
	assert.Equal(t, []float64{0, 5, 25, 30, 20, 10, 0}, arch.Swing.Phis)
	assert.Len(t, arch.Swing.Thetas, 9)
	assert.Len(t, arch.Swing.Radii, 7)
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("spiral")
	require.ErrorIs(t, err, ErrUnknownTrajectory)
	assert.Contains(t, err.Error(), "spiral")
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Equal(t, []string{"free1", "free2", "free3", "free4", "free5", "orbit", "swing1", "swing2"}, names)
}

func TestFamilyString(t *testing.T) {
	assert.Equal(t, "free", FamilyFree.String())
	assert.Equal(t, "swing1", FamilySwing1.String())
	assert.Equal(t, "swing2", FamilySwing2.String())
	assert.Equal(t, "unknown", Family(99).String())
}
