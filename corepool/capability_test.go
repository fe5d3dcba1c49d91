package corepool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminCap_AuthorizesOwnPool(t *testing.T) {
	id := newPoolID()
	cap := newAdminCap(id)
	assert.True(t, cap.Authorizes(id))
}

func TestAdminCap_RejectsOtherPool(t *testing.T) {
	id := newPoolID()
	other := newPoolID()
	cap := newAdminCap(id)
	assert.False(t, cap.Authorizes(other))
}

func TestAdminCap_DuplicateAuthorizesSamePool(t *testing.T) {
	id := newPoolID()
	cap := newAdminCap(id)
	dup := cap.Duplicate()
	assert.True(t, dup.Authorizes(id))
}

func TestPoolID_StringIsStable(t *testing.T) {
	id := newPoolID()
	assert.Equal(t, id.String(), id.String())
	assert.NotEmpty(t, id.String())
}
