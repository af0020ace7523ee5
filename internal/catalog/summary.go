// Package catalog computes aggregate figures for the landing page.
package catalog

import (
	"locallibrary/internal/entities"
)

// BookCounter provides book and author counts.
type BookCounter interface {
	CountBooks() (int64, error)
	CountAuthors() (int64, error)
}

// InstanceCounter provides copy counts.
type InstanceCounter interface {
	CountInstances() (int64, error)
	CountInstancesByStatus(status entities.InstanceStatus) (int64, error)
}

// Summary holds the landing-page aggregates. NumInstancesAvailable is
// always at most NumInstances.
type Summary struct {
	NumBooks              int64
	NumInstances          int64
	NumInstancesAvailable int64
	NumAuthors            int64
}

// SummaryProvider computes catalog aggregates from the repositories.
type SummaryProvider struct {
	books     BookCounter
	instances InstanceCounter
}

// NewSummaryProvider creates a summary provider over the two counters.
func NewSummaryProvider(books BookCounter, instances InstanceCounter) *SummaryProvider {
	return &SummaryProvider{
		books:     books,
		instances: instances,
	}
}

// Summary returns the current catalog aggregates. An empty catalog yields
// all zeros; the method is read-only.
func (p *SummaryProvider) Summary() (Summary, error) {
	var s Summary
	var err error

	if s.NumBooks, err = p.books.CountBooks(); err != nil {
		return Summary{}, err
	}
	if s.NumInstances, err = p.instances.CountInstances(); err != nil {
		return Summary{}, err
	}
	if s.NumInstancesAvailable, err = p.instances.CountInstancesByStatus(entities.StatusAvailable); err != nil {
		return Summary{}, err
	}
	if s.NumAuthors, err = p.books.CountAuthors(); err != nil {
		return Summary{}, err
	}

	return s, nil
}
