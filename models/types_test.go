// Copyright (c) 2026 Tawan Chaiya.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"testing"
	"time"
)

var base = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time { return &t }

func TestIsPublished(t *testing.T) {
	tests := []struct {
		name    string
		pubDate time.Time
		want    bool
	}{
		{"published in the past", base.Add(-5 * 24 * time.Hour), true},
		{"published exactly now", base, true},
		{"future pub date", base.Add(5 * 24 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Question{PubDate: tt.pubDate}
			if got := q.IsPublished(base); got != tt.want {
				t.Errorf("IsPublished() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Once published, a question stays published as time moves forward.
func TestIsPublishedMonotone(t *testing.T) {
	q := Question{PubDate: base}

	published := false
	for now := base.Add(-time.Hour); now.Before(base.Add(48 * time.Hour)); now = now.Add(15 * time.Minute) {
		got := q.IsPublished(now)
		if published && !got {
			t.Fatalf("question un-published at %v", now)
		}
		published = got
	}
	if !published {
		t.Fatal("question never became published")
	}
}

func TestCanVote(t *testing.T) {
	pub := base.Add(-2 * 24 * time.Hour)
	end := base.Add(2 * 24 * time.Hour)

	tests := []struct {
		name    string
		pubDate time.Time
		endDate *time.Time
		now     time.Time
		want    bool
	}{
		{"no end date, after pub", pub, nil, base, true},
		{"no end date, before pub", pub, nil, pub.Add(-time.Second), false},
		{"no end date, at pub", pub, nil, pub, true},
		{"with end date, inside window", pub, timePtr(end), base, true},
		{"with end date, at pub boundary", pub, timePtr(end), pub, true},
		{"with end date, at end boundary", pub, timePtr(end), end, true},
		{"with end date, just before pub", pub, timePtr(end), pub.Add(-time.Second), false},
		{"with end date, just after end", pub, timePtr(end), end.Add(time.Second), false},
		{"end date before pub date", pub, timePtr(pub.Add(-24 * time.Hour)), base, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Question{PubDate: tt.pubDate, EndDate: tt.endDate}
			if got := q.CanVote(tt.now); got != tt.want {
				t.Errorf("CanVote() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWasPublishedRecently(t *testing.T) {
	tests := []struct {
		name    string
		pubDate time.Time
		want    bool
	}{
		{"published just now", base, true},
		{"published 23 hours ago", base.Add(-23 * time.Hour), true},
		{"published exactly one day ago", base.Add(-24 * time.Hour), true},
		{"published 25 hours ago", base.Add(-25 * time.Hour), false},
		{"future pub date", base.Add(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Question{PubDate: tt.pubDate}
			if got := q.WasPublishedRecently(base); got != tt.want {
				t.Errorf("WasPublishedRecently() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSignupRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     SignupRequest
		wantErr bool
	}{
		{"valid", SignupRequest{Username: "alice", Password: "hunter2hunter2"}, false},
		{"username too short", SignupRequest{Username: "a", Password: "hunter2hunter2"}, true},
		{"password too short", SignupRequest{Username: "alice", Password: "short"}, true},
		{"missing username", SignupRequest{Password: "hunter2hunter2"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate.Struct(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate.Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
