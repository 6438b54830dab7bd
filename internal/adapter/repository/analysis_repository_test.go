package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
)

func TestColumnValue(t *testing.T) {
	result := entities.AnalysisResult{
		Headline:      "Big win",
		OtherInsights: []string{"louder mic"},
	}.Normalize()

	for _, field := range entities.AnalysisFields {
		value, err := columnValue(field, result)
		require.NoError(t, err, field)
		assert.NotNil(t, value, field)
	}

	headline, err := columnValue(entities.FieldHeadline, result)
	require.NoError(t, err)
	assert.Equal(t, "Big win", headline)

	insights, err := columnValue(entities.FieldOtherInsights, result)
	require.NoError(t, err)
	assert.Equal(t, datatypes.NewJSONType([]string{"louder mic"}), insights)

	_, err = columnValue(entities.AnalysisField("major_discussions"), result)
	assert.Error(t, err)
}
