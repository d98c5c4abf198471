package progress

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/shaiso/Simplify/internal/domain"
)

// StoreSuite — общий контракт Store для всех бэкендов.
type StoreSuite struct {
	suite.Suite
	newStore func(t *testing.T) Store
	store    Store
	ctx      context.Context
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.newStore(s.T())
}

func (s *StoreSuite) TestGet_UnknownFlowReturnsEmpty() {
	got, err := s.store.Get(s.ctx, "never_saved")
	s.Require().NoError(err)
	s.Equal("never_saved", got.FlowID)
	s.NotNil(got.CompletedSteps)
	s.Empty(got.CompletedSteps)
	s.Empty(got.Documents)
}

func (s *StoreSuite) TestSaveGet_RoundTrip() {
	in := domain.Progress{
		FlowID:         "flow_a",
		CompletedSteps: []string{"step_b", "step_a"},
		Documents:      map[string]bool{"passport": true, "photo": false},
	}
	s.Require().NoError(s.store.Save(s.ctx, in))

	got, err := s.store.Get(s.ctx, "flow_a")
	s.Require().NoError(err)
	s.Equal("flow_a", got.FlowID)
	s.ElementsMatch([]string{"step_a", "step_b"}, got.CompletedSteps)
	s.Equal(map[string]bool{"passport": true, "photo": false}, got.Documents)
}

func (s *StoreSuite) TestSave_ReplacesWholeValue() {
	s.Require().NoError(s.store.Save(s.ctx, domain.Progress{
		FlowID:         "flow_a",
		CompletedSteps: []string{"s1", "s2"},
		Documents:      map[string]bool{"passport": true},
	}))
	s.Require().NoError(s.store.Save(s.ctx, domain.Progress{
		FlowID:         "flow_a",
		CompletedSteps: []string{"s3"},
	}))

	got, err := s.store.Get(s.ctx, "flow_a")
	s.Require().NoError(err)
	s.Equal([]string{"s3"}, got.CompletedSteps)
	s.Empty(got.Documents)
}

func (s *StoreSuite) TestSave_NilStepsStoredAsEmpty() {
	s.Require().NoError(s.store.Save(s.ctx, domain.Progress{FlowID: "flow_nil"}))

	got, err := s.store.Get(s.ctx, "flow_nil")
	s.Require().NoError(err)
	s.NotNil(got.CompletedSteps)
	s.Empty(got.CompletedSteps)
}

func (s *StoreSuite) TestFlowsAreIsolated() {
	s.Require().NoError(s.store.Save(s.ctx, domain.Progress{FlowID: "flow_a", CompletedSteps: []string{"a1"}}))
	s.Require().NoError(s.store.Save(s.ctx, domain.Progress{FlowID: "flow_b", CompletedSteps: []string{"b1", "b2"}}))

	a, err := s.store.Get(s.ctx, "flow_a")
	s.Require().NoError(err)
	b, err := s.store.Get(s.ctx, "flow_b")
	s.Require().NoError(err)

	s.Equal([]string{"a1"}, a.CompletedSteps)
	s.ElementsMatch([]string{"b1", "b2"}, b.CompletedSteps)
}

func (s *StoreSuite) TestDelete() {
	s.Require().NoError(s.store.Save(s.ctx, domain.Progress{FlowID: "flow_a", CompletedSteps: []string{"a1"}}))
	s.Require().NoError(s.store.Delete(s.ctx, "flow_a"))

	got, err := s.store.Get(s.ctx, "flow_a")
	s.Require().NoError(err)
	s.Empty(got.CompletedSteps)

	s.NoError(s.store.Delete(s.ctx, "flow_never_saved"))
}

func (s *StoreSuite) TestEmptyFlowID() {
	_, err := s.store.Get(s.ctx, "")
	s.True(errors.Is(err, ErrEmptyFlowID))
	s.True(errors.Is(s.store.Save(s.ctx, domain.Progress{}), ErrEmptyFlowID))
	s.True(errors.Is(s.store.Delete(s.ctx, ""), ErrEmptyFlowID))
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func(t *testing.T) Store {
		return NewMemoryStore()
	}})
}
