package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedicationPatchProjection(t *testing.T) {
	// Unknown fields are dropped at decode time; only allow-listed
	// fields survive into the change set.
	var patch UpdateMedicationRequest
	err := json.Unmarshal([]byte(`{"unrelated_field":"x","generic_name":"y"}`), &patch)
	require.NoError(t, err)

	changes := patch.Changes()
	assert.Equal(t, map[string]interface{}{"generic_name": "y"}, changes)
	assert.False(t, patch.Empty())
}

func TestMedicationPatchEmptyAfterProjection(t *testing.T) {
	var patch UpdateMedicationRequest
	err := json.Unmarshal([]byte(`{"unrelated_field":"x"}`), &patch)
	require.NoError(t, err)

	assert.Empty(t, patch.Changes())
	assert.True(t, patch.Empty())
}

func TestDoctorPatchProjection(t *testing.T) {
	var patch UpdateDoctorRequest
	err := json.Unmarshal([]byte(`{"fname":"Ada","zip":80203,"bogus":true}`), &patch)
	require.NoError(t, err)

	changes := patch.Changes()
	assert.Equal(t, "Ada", changes["fname"])
	assert.Equal(t, int64(80203), changes["zip"])
	assert.NotContains(t, changes, "bogus")
	assert.Len(t, changes, 2)
}

func TestDoctorPatchPasswordNotProjectedRaw(t *testing.T) {
	// The raw password never appears as a column change; the service
	// hashes it into pswd_hash.
	var patch UpdateDoctorRequest
	err := json.Unmarshal([]byte(`{"password":"hunter2"}`), &patch)
	require.NoError(t, err)

	assert.Empty(t, patch.Changes())
	assert.False(t, patch.Empty())
}

func TestDoctorJSONNeverLeaksHash(t *testing.T) {
	doc := Doctor{ID: 1, Fname: "Ada", Email: "ada@example.com", PswdHash: "$2a$10$abc"}

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "pswd_hash")
	assert.NotContains(t, string(out), "$2a$10$abc")
}
