// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

package slice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amwozniak/entertainment-api/pkg/slice"
)

/*
TestMap tests the generic transformation helper.
*/
func TestMap(t *testing.T) {
	doubled := slice.Map([]int{1, 2, 3}, func(n int) int { return n * 2 })
	assert.Equal(t, []int{2, 4, 6}, doubled)

	quoted := slice.Map([]string{"a", "b"}, func(s string) string { return "'" + s + "'" })
	assert.Equal(t, []string{"'a'", "'b'"}, quoted)

	assert.Nil(t, slice.Map(nil, func(n int) int { return n }))
}

/*
TestFilter tests the generic predicate helper.
*/
func TestFilter(t *testing.T) {
	even := slice.Filter([]int{1, 2, 3, 4}, func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)

	assert.Nil(t, slice.Filter([]int{1, 3}, func(n int) bool { return n > 10 }))
	assert.Nil(t, slice.Filter(nil, func(n int) bool { return true }))
}

/*
TestReduce tests the generic accumulator helper.
*/
func TestReduce(t *testing.T) {
	sum := slice.Reduce([]int{1, 2, 3}, 0, func(acc, n int) int { return acc + n })
	assert.Equal(t, 6, sum)

	joined := slice.Reduce([]string{"a", "b"}, "", func(acc, s string) string { return acc + s })
	assert.Equal(t, "ab", joined)
}
