package simulation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
	arenamock "github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena/mock"
	simorch "github.com/KirkDiggler/rpg-arena/internal/orchestrators/simulation"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/runs"
	runsmock "github.com/KirkDiggler/rpg-arena/internal/repositories/runs/mock"
	"github.com/KirkDiggler/rpg-arena/internal/services/simulation"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockArena *arenamock.MockService
	mockRuns  *runsmock.MockRepository
	now       time.Time
	orch      *simorch.Orchestrator
	ctx       context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockArena = arenamock.NewMockService(s.ctrl)
	s.mockRuns = runsmock.NewMockRepository(s.ctrl)
	s.now = time.Date(2026, time.October, 1, 9, 30, 0, 0, time.UTC)
	s.ctx = context.Background()

	orch, err := simorch.New(&simorch.Config{
		Arena:       s.mockArena,
		Runs:        s.mockRuns,
		IDGenerator: idgen.NewSequential("run"),
		Clock:       &clock.Fixed{At: s.now},
	})
	s.Require().NoError(err)
	s.orch = orch
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) TestNew_Validation() {
	_, err := simorch.New(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = simorch.New(&simorch.Config{Runs: s.mockRuns})
	s.Require().Error(err)
	s.Contains(err.Error(), "Arena")

	_, err = simorch.New(&simorch.Config{Arena: s.mockArena})
	s.Require().Error(err)
	s.Contains(err.Error(), "Runs")
}

func (s *OrchestratorTestSuite) TestSimulate_ArchivesTheReport() {
	opts := arena.DefaultOptions()
	opts.Years = 3
	report := &arena.Report{Seed: 42, Options: opts, Totals: arena.Totals{Fights: 9}}

	s.mockArena.EXPECT().
		Run(s.ctx, &arena.RunInput{Options: opts, Seed: 42}).
		Return(&arena.RunOutput{Report: report}, nil)
	s.mockRuns.EXPECT().
		Save(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *runs.SaveInput) (*runs.SaveOutput, error) {
			s.Equal("run_1", input.Run.ID)
			s.Equal(uint64(42), input.Run.Seed)
			s.True(s.now.Equal(input.Run.CreatedAt))
			s.Same(report, input.Run.Report)
			return &runs.SaveOutput{Run: input.Run}, nil
		})

	out, err := s.orch.Simulate(s.ctx, &simulation.SimulateInput{Options: &opts, Seed: 42})
	s.Require().NoError(err)
	s.Equal("run_1", out.Run.ID)
	s.Equal(9, out.Run.Report.Totals.Fights)
}

func (s *OrchestratorTestSuite) TestSimulate_DefaultsOptionsAndDrawsSeed() {
	s.mockArena.EXPECT().
		Run(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *arena.RunInput) (*arena.RunOutput, error) {
			s.Equal(arena.DefaultOptions(), input.Options)
			s.NotZero(input.Seed)
			return &arena.RunOutput{Report: &arena.Report{Seed: input.Seed}}, nil
		})
	s.mockRuns.EXPECT().Save(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *runs.SaveInput) (*runs.SaveOutput, error) {
			return &runs.SaveOutput{Run: input.Run}, nil
		})

	out, err := s.orch.Simulate(s.ctx, &simulation.SimulateInput{})
	s.Require().NoError(err)
	s.Equal(out.Run.Report.Seed, out.Run.Seed)
}

func (s *OrchestratorTestSuite) TestSimulate_RunFailureIsNotArchived() {
	s.mockArena.EXPECT().
		Run(s.ctx, gomock.Any()).
		Return(nil, errors.InvalidCombatState("fight did not end within 1000 rounds"))

	_, err := s.orch.Simulate(s.ctx, &simulation.SimulateInput{Seed: 7})
	s.Require().Error(err)
	s.True(errors.IsInvalidCombatState(err))
	s.Contains(err.Error(), "simulation run_1 failed")
}

func (s *OrchestratorTestSuite) TestSimulate_ArchiveFailure() {
	s.mockArena.EXPECT().Run(s.ctx, gomock.Any()).
		Return(&arena.RunOutput{Report: &arena.Report{}}, nil)
	s.mockRuns.EXPECT().Save(s.ctx, gomock.Any()).
		Return(nil, errors.Unavailable("redis down"))

	_, err := s.orch.Simulate(s.ctx, &simulation.SimulateInput{Seed: 7})
	s.True(errors.IsUnavailable(err))
}

func (s *OrchestratorTestSuite) TestSimulate_NilInput() {
	_, err := s.orch.Simulate(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGetRun() {
	run := &runs.Run{ID: "run_9"}
	s.mockRuns.EXPECT().Get(s.ctx, &runs.GetInput{ID: "run_9"}).
		Return(&runs.GetOutput{Run: run}, nil)

	out, err := s.orch.GetRun(s.ctx, &simulation.GetRunInput{RunID: "run_9"})
	s.Require().NoError(err)
	s.Same(run, out.Run)
}

func (s *OrchestratorTestSuite) TestGetRun_Errors() {
	_, err := s.orch.GetRun(s.ctx, &simulation.GetRunInput{})
	s.True(errors.IsInvalidArgument(err))

	s.mockRuns.EXPECT().Get(s.ctx, &runs.GetInput{ID: "gone"}).
		Return(nil, errors.NotFound("run gone not found"))
	_, err = s.orch.GetRun(s.ctx, &simulation.GetRunInput{RunID: "gone"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestListRuns() {
	listed := []*runs.Run{{ID: "run_2"}, {ID: "run_1"}}
	s.mockRuns.EXPECT().List(s.ctx, &runs.ListInput{Limit: 5}).
		Return(&runs.ListOutput{Runs: listed}, nil)

	out, err := s.orch.ListRuns(s.ctx, &simulation.ListRunsInput{Limit: 5})
	s.Require().NoError(err)
	s.Equal(listed, out.Runs)

	s.mockRuns.EXPECT().List(s.ctx, &runs.ListInput{}).
		Return(&runs.ListOutput{}, nil)
	_, err = s.orch.ListRuns(s.ctx, nil)
	s.NoError(err)
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
