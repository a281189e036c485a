package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogReporter_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := NewLogReporter(zap.New(core))

	r.Report(&Failure{Kind: FailureLoad, Op: "get organization", OrgID: "org_1", Err: errBoom})
	r.Report(&Failure{Kind: FailureMutation, Op: "delete user", OrgID: "org_1", UserID: "u1", Err: errBoom})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "u1", entries[1].ContextMap()["user_id"])
	assert.NotContains(t, entries[0].ContextMap(), "user_id")
}

func TestFailure_ErrorAndCommitted(t *testing.T) {
	f := &Failure{Kind: FailureMutation, Op: "update user", OrgID: "org_1", UserID: "u1", Err: errBoom}
	assert.Equal(t, "mutation failure: update user org_id=org_1 user_id=u1: connection refused", f.Error())
	assert.ErrorIs(t, f, errBoom)

	assert.True(t, Committed(nil))
	assert.True(t, Committed(&Failure{Kind: FailureLoad, Err: errBoom}))
	assert.False(t, Committed(f))
	assert.False(t, Committed(ErrCommitPending))
}

func TestReporterFunc(t *testing.T) {
	var got *Failure
	ReporterFunc(func(f *Failure) { got = f }).Report(&Failure{Kind: FailurePrecondition, Err: ErrPrecondition})
	require.NotNil(t, got)
	assert.Equal(t, "precondition", got.Kind.String())
}
