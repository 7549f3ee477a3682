package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateResult_Consistent(t *testing.T) {
	r := EstimateResult{
		Items: []FoodLineItem{
			{Label: "2 eggs", Calories: 156, Matched: true},
			{Label: "toast", Calories: 75, Matched: true},
		},
		TotalCalories: 231,
	}
	assert.True(t, r.Consistent())

	r.TotalCalories = 230
	assert.False(t, r.Consistent())
}

func TestEstimateResult_Consistent_Empty(t *testing.T) {
	assert.True(t, EstimateResult{}.Consistent())
}

func TestEstimate_Result(t *testing.T) {
	e := &Estimate{
		ID:            "abc",
		RawInput:      "toast",
		Items:         []FoodLineItem{{Label: "toast", Calories: 75, Matched: true}},
		TotalCalories: 75,
	}
	r := e.Result()
	assert.Equal(t, 75, r.TotalCalories)
	assert.Len(t, r.Items, 1)
	assert.True(t, r.Consistent())
}
