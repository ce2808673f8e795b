package chat

import (
	"context"
	"log"
	"strings"
	"time"

	"finadvisor/internal/catalog"
	"finadvisor/internal/model"
	"finadvisor/internal/observability"
)

// FallbackReply is the one user-visible apology for collaborator failures.
const FallbackReply = "抱歉，我现在遇到了一些问题，请稍后再试。"

const NoPriorRecommendationReply = "抱歉，我没有找到之前的推荐记录。请重新告诉我您的投资需求，我会为您推荐合适的产品。"

const askAllSlotsReply = `为了给您推荐最合适的产品，请告诉我：

1. 您计划投资的金额是多少？
2. 您的预期收益率是？
3. 您的投资时间是？`

var dissatisfactionWords = []string{
	"不满意", "换一下", "换一个", "不合适", "不好", "不行", "其他", "别的", "重新推荐",
}

var recommendationWords = []string{
	"推荐", "介绍", "推荐一个", "推荐一只", "有什么好的", "有哪些",
}

func isDissatisfied(text string) bool {
	return containsAny(text, dissatisfactionWords)
}

func isAskingRecommendation(text string) bool {
	return containsAny(text, recommendationWords)
}

// Dispatcher routes one user turn through the engine. It never panics
// outward and never retries the collaborator.
type Dispatcher struct {
	Catalog *catalog.Store
	Client  Completer
	ModelID string
}

// TurnResult carries the reply plus the freshly produced candidates when
// this turn showed a recommendation, so the caller can schedule the closing
// pitch.
type TurnResult struct {
	Reply       string
	Recommended []model.MatchCandidate
}

// HandleTurn processes message for s, which the caller has locked for the
// whole turn. s.Messages holds the transcript up to but excluding this
// message. Branch priority: dissatisfaction, specific product question,
// bare recommendation request, slot filling / matching.
func (d *Dispatcher) HandleTurn(ctx context.Context, s *Session, message string) TurnResult {
	if isDissatisfied(message) {
		if s.LastRec == nil {
			s.State = StateAwaitingSlots
			return TurnResult{Reply: NoPriorRecommendationReply}
		}
		// Slots and exclusions stay untouched; the collaborator probes
		// which dimension the user is unhappy with.
		s.State = StateDissatisfactionHandling
		return TurnResult{Reply: d.delegate(ctx, s, DissatisfactionPrompt(), message)}
	}

	if p, ok := d.Catalog.LookupBySubstring(message); ok {
		return TurnResult{Reply: d.delegate(ctx, s, ProductDetailPrompt(FormatProductDetails(p)), message)}
	}

	extracted := ExtractSlots([]model.ChatMessage{{Role: "user", Content: message}})

	// A recommendation request carrying no slot values gets the fixed
	// three questions; one that does carry values falls through to
	// extraction.
	if isAskingRecommendation(message) && extracted.Empty() {
		return TurnResult{Reply: askAllSlotsReply}
	}

	if s.LastRec != nil {
		// Feedback on a prior recommendation: newer values override the
		// slots that produced it, then we re-match against the grown
		// exclusion set.
		s.Slots.Merge(extracted)
		return d.recommend(s)
	}

	s.Slots.Merge(extracted)
	if s.Slots.Complete() {
		return d.recommend(s)
	}

	if s.Slots.Empty() {
		s.State = StateAwaitingSlots
	} else {
		s.State = StateHasPartialSlots
	}
	return TurnResult{Reply: missingSlotQuestions(s.Slots)}
}

func (d *Dispatcher) recommend(s *Session) TurnResult {
	s.State = StateRecommending

	candidates := FindMatches(d.Catalog.Products(), s.Slots, s.Excluded)
	for _, c := range candidates {
		s.Exclude(c.Product.Name)
	}
	s.LastRec = &model.Recommendation{
		Candidates: candidates,
		Slots:      s.Slots,
		At:         time.Now(),
	}
	s.State = StateRecommendationShown

	if len(candidates) > 0 {
		observability.RecommendationsTotal.Inc()
	}
	log.Printf("[Dispatcher] session %s: %d candidates, %d excluded", s.ID, len(candidates), len(s.Excluded))

	return TurnResult{
		Reply:       FormatRecommendation(candidates),
		Recommended: candidates,
	}
}

func (d *Dispatcher) delegate(ctx context.Context, s *Session, systemPrompt, message string) string {
	answer, err := CallLLM(ctx, d.Client, d.ModelID, systemPrompt, s.Messages, message)
	if err != nil {
		log.Printf("[Dispatcher] collaborator failure: %v", err)
		observability.CollaboratorFailuresTotal.Inc()
		return FallbackReply
	}
	return answer
}

// One question per missing slot, newline separated, fixed order.
func missingSlotQuestions(slots model.InvestmentSlots) string {
	var questions []string
	if slots.Amount == nil {
		questions = append(questions, "您计划投资的金额是多少？")
	}
	if slots.Return == nil {
		questions = append(questions, "您的预期收益率是？")
	}
	if slots.HorizonDays == nil {
		questions = append(questions, "您的投资时间是？")
	}
	return strings.Join(questions, "\n")
}
