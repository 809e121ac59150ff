// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package information

import "sort"

// # Flattened Feed

// FlatItem is one item projected out of its group for the public feed.
//
// The owning group's name rides along so the site can still filter and
// label entries after the group boundaries are erased.
type FlatItem struct {
	GroupTitle GroupName `json:"groupTitle"`
	Item
}

// Feed sort keys accepted by the list endpoint.
const (
	SortByDate       = "date"
	SortByEngagement = "engagement"
)

// FeedSortKeys lists the accepted values for the feed sort parameter.
var FeedSortKeys = []string{SortByDate, SortByEngagement}

// Flatten projects every item of every group into a single flat slice.
//
// Groups keep their relative order and items keep their in-group order, so
// without an explicit sort the feed reads top-to-bottom the same way the
// grouped view does. Empty groups contribute nothing.
func Flatten(groups []*Group) []FlatItem {
	total := 0
	for _, group := range groups {
		total += len(group.Items)
	}

	feed := make([]FlatItem, 0, total)
	for _, group := range groups {
		for _, item := range group.Items {
			feed = append(feed, FlatItem{GroupTitle: group.GroupTitle, Item: item})
		}
	}
	return feed
}

// SortFeed orders the flattened feed by the given key, in place.
//
// An empty key keeps the natural grouped order. Sorting is stable so items
// that tie keep their original relative position.
func SortFeed(feed []FlatItem, sortKey string) {
	switch sortKey {
	case SortByDate:
		sort.SliceStable(feed, func(i, j int) bool {
			return feed[i].UploadDate.After(feed[j].UploadDate)
		})
	case SortByEngagement:
		sort.SliceStable(feed, func(i, j int) bool {
			return feed[i].EngagementMetric > feed[j].EngagementMetric
		})
	}
}
