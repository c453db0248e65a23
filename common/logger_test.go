package common

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_DefaultsToStandard(t *testing.T) {
	assert.Equal(t, logrus.StandardLogger(), Logger(context.Background()))
}

func TestWithFields(t *testing.T) {
	logger, hook := test.NewNullLogger()
	ctx := WithLogger(context.Background(), logger)
	ctx = WithFields(ctx, logrus.Fields{"component": 3})
	Logger(ctx).Info("solved")

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "solved", hook.LastEntry().Message)
	assert.Equal(t, 3, hook.LastEntry().Data["component"])
}
