package middleware

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordIntegrationErrorIncrementsCounter(t *testing.T) {
	before := testutil.ToFloat64(integrationErrors.WithLabelValues("formrelay"))

	RecordIntegrationError("formrelay")
	RecordIntegrationError("formrelay")

	assert.Equal(t, before+2, testutil.ToFloat64(integrationErrors.WithLabelValues("formrelay")))
}

func TestRecordIntegrationErrorKeepsServicesApart(t *testing.T) {
	before := testutil.ToFloat64(integrationErrors.WithLabelValues("analytics"))

	RecordIntegrationError("formrelay")

	assert.Equal(t, before, testutil.ToFloat64(integrationErrors.WithLabelValues("analytics")))
}
