package passkey

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelperFeedsRequestOnStdin(t *testing.T) {
	t.Parallel()

	var gotInput string
	var gotArgs []string
	helper := &Helper{run: func(_ context.Context, input string, args ...string) (string, string, error) {
		gotInput = input
		gotArgs = args
		return `{"id":"cred-1","response":{"authenticatorData":"YQ","clientDataJSON":"Yg","signature":"Yw"}}` + "\n", "", nil
	}}

	assertion, err := NewNativeCeremony(helper).Get(context.Background(), ports.CredentialRequestOptions{Challenge: "abc", RPID: "example.com"})
	require.NoError(t, err)
	assert.Equal(t, "cred-1", assertion.CredentialID)
	assert.Equal(t, []string{"get"}, gotArgs)
	assert.JSONEq(t, `{"challenge":"abc","rpId":"example.com"}`, gotInput)
}

func TestHelperCancellationIsClassified(t *testing.T) {
	t.Parallel()

	helper := &Helper{run: func(context.Context, string, ...string) (string, string, error) {
		return "", "NotAllowedError: user dismissed", errors.New("exit status 1")
	}}

	stamper := NewStamper(NewNativeCeremony(helper), Config{RPID: "example.com"})
	_, err := stamper.Stamp(context.Background(), []byte("payload"))
	require.Error(t, err)
	assert.True(t, domain.IsUserCancelled(err))
}

func TestMissingHelperIsNotInitialized(t *testing.T) {
	t.Parallel()

	_, err := NewHelper("").Get(context.Background(), "{}")
	require.ErrorIs(t, err, domain.ErrCredentialNotInitialized)
}
