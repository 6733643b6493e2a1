package obs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeLogsFailures(t *testing.T) {
	hook := test.NewLocal(Logger())
	ctx := WithRequestID(context.Background(), "req-1")

	func() (err error) {
		defer Time(ctx, "records.test")(&err)
		return errors.New("boom")
	}()

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "req-1", entry.Data["req_id"])
	assert.Equal(t, "records.test", entry.Data["op"])
}

func TestRequestID(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
	assert.Equal(t, "abc", RequestID(WithRequestID(context.Background(), "abc")))
}

func TestInit(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() {
		loggerMu.Lock()
		logger = prev
		loggerMu.Unlock()
	})

	require.Error(t, Init(LogConfig{Level: "loud"}))

	require.NoError(t, Init(LogConfig{
		Level: "debug",
		File:  filepath.Join(t.TempDir(), "svc.log"),
		JSON:  true,
	}))
	assert.Equal(t, logrus.DebugLevel, Logger().GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, Logger().Formatter)
}
