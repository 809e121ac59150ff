// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package information

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC)
}

func feedFixture() []*Group {
	return []*Group{
		{
			GroupTitle: GroupGovernmentSchemes,
			Items: []Item{
				{ID: "a1", Title: "PM-KISAN", EngagementMetric: 300, UploadDate: day(10)},
				{ID: "a2", Title: "Soil Health Card", EngagementMetric: 120, UploadDate: day(20)},
			},
		},
		{
			GroupTitle: GroupNewsUpdates,
			Items:      []Item{},
		},
		{
			GroupTitle: GroupAgriculturalResources,
			Items: []Item{
				{ID: "b1", Title: "Kharif sowing calendar", EngagementMetric: 300, UploadDate: day(15)},
			},
		},
	}
}

/*
TestFlatten verifies the projection: every item appears exactly once, carries
its owning group's name, keeps grouped order, and empty groups vanish.
*/
func TestFlatten(t *testing.T) {
	feed := Flatten(feedFixture())

	require.Len(t, feed, 3)
	assert.Equal(t, "a1", feed[0].ID)
	assert.Equal(t, "a2", feed[1].ID)
	assert.Equal(t, "b1", feed[2].ID)
	assert.Equal(t, GroupGovernmentSchemes, feed[0].GroupTitle)
	assert.Equal(t, GroupGovernmentSchemes, feed[1].GroupTitle)
	assert.Equal(t, GroupAgriculturalResources, feed[2].GroupTitle)
}

func TestFlattenEmpty(t *testing.T) {
	assert.Empty(t, Flatten(nil))
	assert.Empty(t, Flatten([]*Group{{GroupTitle: GroupNewsUpdates}}))
}

/*
TestSortFeed verifies the optional orderings: date and engagement both sort
descending, ties keep their grouped order, and an empty key changes nothing.
*/
func TestSortFeed(t *testing.T) {
	t.Run("by date, newest first", func(t *testing.T) {
		feed := Flatten(feedFixture())
		SortFeed(feed, SortByDate)

		assert.Equal(t, []string{"a2", "b1", "a1"}, feedIDs(feed))
	})

	t.Run("by engagement, ties stay in grouped order", func(t *testing.T) {
		feed := Flatten(feedFixture())
		SortFeed(feed, SortByEngagement)

		// a1 and b1 tie at 300; a1 came first in the grouped view.
		assert.Equal(t, []string{"a1", "b1", "a2"}, feedIDs(feed))
	})

	t.Run("empty key keeps natural order", func(t *testing.T) {
		feed := Flatten(feedFixture())
		SortFeed(feed, "")

		assert.Equal(t, []string{"a1", "a2", "b1"}, feedIDs(feed))
	})
}

func feedIDs(feed []FlatItem) []string {
	ids := make([]string, len(feed))
	for i, entry := range feed {
		ids[i] = entry.ID
	}
	return ids
}
