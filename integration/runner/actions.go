package runner

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jwebster45206/urea-quest/pkg/game"
	"github.com/jwebster45206/urea-quest/pkg/narrative"
	"github.com/jwebster45206/urea-quest/pkg/resolver"
	"github.com/jwebster45206/urea-quest/pkg/world"
)

// execute performs one step action on the session.
func (r *Runner) execute(ctx context.Context, p *play, step TestStep) error {
	s := p.session
	record := func(res resolver.Result) { p.last = &res }

	switch step.Action {
	case ActionUse:
		t, err := resolveTarget(s, step.Target)
		if err != nil {
			return err
		}
		res := s.Interact(t)
		if res.Status == resolver.StatusPrompt {
			res = s.Choose(0)
		}
		s.Decline()
		record(res)

	case ActionInteract:
		t, err := resolveTarget(s, step.Target)
		if err != nil {
			return err
		}
		record(s.Interact(t))

	case ActionNearest:
		record(s.InteractNearest(nil))

	case ActionChoose:
		record(s.Choose(step.Option))

	case ActionDecline:
		s.Decline()

	case ActionAnswer:
		i, err := answerIndex(r, s, step.Answer)
		if err != nil {
			return err
		}
		if ans := s.Answer(i); !ans.Accepted {
			return fmt.Errorf("answer %q was not accepted", step.Answer)
		}

	case ActionContinue:
		s.ContinueTrivia()

	case ActionAbandon:
		s.AbandonTrivia()

	case ActionTick:
		s.Tick()

	case ActionCommand:
		if _, ok := s.HandleCommand(step.Input); !ok {
			return fmt.Errorf("unknown command %q", step.Input)
		}

	case ActionMoveTo:
		t, err := resolveTarget(s, step.Target)
		if err != nil {
			return err
		}
		s.World.PlacePlayer(t.Position.Add(world.Vec3{Z: 1}), t.Area)

	case ActionReload:
		return r.reload(ctx, p)

	case ActionReset:
		return r.reset(ctx, p)

	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
	return nil
}

// resolveTarget finds a target by id, or the first loose item with that
// name.
func resolveTarget(s *game.Session, idOrItem string) (*world.Target, error) {
	if t, ok := s.World.Get(idOrItem); ok {
		return t, nil
	}
	if t, ok := findLoose(s, idOrItem); ok {
		return t, nil
	}
	return nil, fmt.Errorf("no target or loose item %q", idOrItem)
}

func findLoose(s *game.Session, item string) (*world.Target, bool) {
	for _, p := range s.World.Resources() {
		if p.Item == item {
			return s.World.Get(p.ID)
		}
	}
	return nil, false
}

func answerIndex(r *Runner, s *game.Session, answer string) (int, error) {
	if !s.Trivia.Running() {
		return 0, fmt.Errorf("no trivia running")
	}
	q := r.Definition.Trivia[s.Trivia.Index()]
	switch answer {
	case "correct":
		return q.Correct, nil
	case "wrong":
		return (q.Correct + 1) % len(q.Answers), nil
	}
	i, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("answer must be correct, wrong or an index: %w", err)
	}
	return i, nil
}

// drainText renders pending session output as plain lines.
func drainText(s *game.Session) []string {
	var lines []string
	for _, m := range s.Messages() {
		switch {
		case m.IsZero():
		case m.Kind == narrative.KindDialogue && m.Speaker != "":
			lines = append(lines, m.Speaker+": "+m.Text)
		default:
			lines = append(lines, m.Text)
		}
	}
	return lines
}
