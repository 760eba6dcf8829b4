package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingAggregate_Add_FirstReview(t *testing.T) {
	agg := RatingAggregate{}.Add(4)

	assert.Equal(t, 1, agg.Count)
	assert.InDelta(t, 4.0, agg.Average, 1e-9)
}

func TestRatingAggregate_Add_RunningMean(t *testing.T) {
	agg := RatingAggregate{Average: 4.0, Count: 2}.Add(5)

	assert.Equal(t, 3, agg.Count)
	assert.InDelta(t, 13.0/3.0, agg.Average, 1e-9)
}

func TestRatingAggregate_Add_MatchesArithmeticMean(t *testing.T) {
	ratings := []int{5, 1, 3, 4, 4, 2, 5}
	var agg RatingAggregate
	sum := 0
	for _, r := range ratings {
		agg = agg.Add(r)
		sum += r
	}

	assert.Equal(t, len(ratings), agg.Count)
	assert.InDelta(t, float64(sum)/float64(len(ratings)), agg.Average, 1e-9)
}

func TestRatingAggregate_Add_NegativeCountTreatedAsZero(t *testing.T) {
	agg := RatingAggregate{Average: 3, Count: -2}.Add(2)

	assert.Equal(t, 1, agg.Count)
	assert.InDelta(t, 2.0, agg.Average, 1e-9)
}

func TestRatingAggregate_Remove(t *testing.T) {
	agg := RatingAggregate{}.Add(5).Add(3).Add(1)

	agg = agg.Remove(1)
	require.Equal(t, 2, agg.Count)
	assert.InDelta(t, 4.0, agg.Average, 1e-9)

	agg = agg.Remove(5)
	require.Equal(t, 1, agg.Count)
	assert.InDelta(t, 3.0, agg.Average, 1e-9)

	agg = agg.Remove(3)
	assert.Equal(t, RatingAggregate{}, agg)
}

func TestRatingAggregate_Remove_ClampsToRange(t *testing.T) {
	agg := RatingAggregate{Average: 1, Count: 2}.Remove(5)

	assert.Equal(t, 1, agg.Count)
	assert.Equal(t, 0.0, agg.Average)
}

func TestRatingAggregate_Stars(t *testing.T) {
	testCases := []struct {
		name string
		agg  RatingAggregate
		want int
	}{
		{"unrated", RatingAggregate{}, 0},
		{"rounds down", RatingAggregate{Average: 3.4, Count: 5}, 3},
		{"rounds half up", RatingAggregate{Average: 3.5, Count: 2}, 4},
		{"exact", RatingAggregate{Average: 5, Count: 1}, 5},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.agg.Stars())
		})
	}
}

func TestSweetDetails_Validate(t *testing.T) {
	valid := SweetDetails{Name: "Brigadeiro", Price: 2.5, Category: "Doces", ImageURL: "https://img/brigadeiro.png"}
	assert.NoError(t, valid.Validate())

	noImage := valid
	noImage.ImageURL = "  "
	assert.ErrorIs(t, noImage.Validate(), ErrInvalidInput)

	negative := valid
	negative.Price = -1
	assert.ErrorIs(t, negative.Validate(), ErrInvalidInput)
}

func TestSweet_Apply_KeepsRating(t *testing.T) {
	s := &Sweet{ID: "s1", Name: "Old", Rating: RatingAggregate{Average: 4.5, Count: 2}}

	s.Apply(SweetDetails{Name: " Bolo ", Price: 30, Category: "Bolos", ImageURL: "u"})

	assert.Equal(t, "Bolo", s.Name)
	assert.Equal(t, 30.0, s.Price)
	assert.Equal(t, RatingAggregate{Average: 4.5, Count: 2}, s.Rating)
}
