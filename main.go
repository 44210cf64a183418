package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openai/openai-go"
	"github.com/rs/zerolog/log"

	"github.com/omarelhadidy/hesab-agent/agent/agents/assistant"
	"github.com/omarelhadidy/hesab-agent/agent/agents/executors"
	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
	"github.com/omarelhadidy/hesab-agent/agent/debtplan"
	extractx "github.com/omarelhadidy/hesab-agent/agent/extract"
	intentx "github.com/omarelhadidy/hesab-agent/agent/intent"
	llmx "github.com/omarelhadidy/hesab-agent/agent/llm"
	"github.com/omarelhadidy/hesab-agent/agent/memory"
	"github.com/omarelhadidy/hesab-agent/agent/planstore"
	promptx "github.com/omarelhadidy/hesab-agent/agent/prompt"
	statex "github.com/omarelhadidy/hesab-agent/agent/state"
	configx "github.com/omarelhadidy/hesab-agent/pkg/config"
	_ "github.com/omarelhadidy/hesab-agent/pkg/logger/autoload"
	openrouterx "github.com/omarelhadidy/hesab-agent/pkg/openrouter"
)

type AppConfig struct {
	UserID string `envconfig:"USER_ID" split_words:"true" default:"local-user"`
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[AppConfig]("HESAB")

	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")
	if err := llmCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid model configuration")
	}
	openRouterClient := openrouterx.NewClient(llmCfg.OpenRouterFor(llmx.RoleAdvisor))
	if openRouterClient == nil {
		log.Fatal().Msg("failed to initialize openrouter client")
	}
	verifyModelAccess(ctx, openRouterClient)

	classifierModel, err := llmx.NewForRole(ctx, *llmCfg, llmx.RoleClassifier)
	if err != nil {
		log.Fatal().Err(err).Msg("create classifier model")
	}
	extractorModel, err := llmx.NewForRole(ctx, *llmCfg, llmx.RoleExtractor)
	if err != nil {
		log.Fatal().Err(err).Msg("create extractor model")
	}
	advisorModel, err := llmx.NewForRole(ctx, *llmCfg, llmx.RoleAdvisor)
	if err != nil {
		log.Fatal().Err(err).Msg("create advisor model")
	}

	prompts := promptx.LoadPromptSet()

	classifier, err := intentx.NewClassifier(classifierModel, prompts.Router)
	if err != nil {
		log.Fatal().Err(err).Msg("create classifier")
	}

	sessions := newSessionStore()
	plans := newPlanStore(ctx)
	memories := memory.NewInMemoryStore()
	summaries := memory.NewInMemorySummaries()

	registry, err := buildRegistry(extractorModel, advisorModel, prompts, plans, memories)
	if err != nil {
		log.Fatal().Err(err).Msg("build intent registry")
	}

	agent, err := assistant.New(sessions, registry, classifier, summaries)
	if err != nil {
		log.Fatal().Err(err).Msg("build assistant")
	}

	runREPL(ctx, agent, appCfg.UserID)
}

// verifyModelAccess probes the model endpoint once at startup so a bad API
// key surfaces before the first conversation turn instead of mid-reply.
func verifyModelAccess(ctx context.Context, client *openai.Client) {
	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := client.Models.List(probeCtx); err != nil {
		log.Warn().Err(err).Msg("model endpoint check failed, replies may error")
		return
	}
	log.Debug().Msg("model endpoint reachable")
}

// newSessionStore prefers Upstash Redis and falls back to process-local
// sessions when no credentials are configured.
func newSessionStore() statex.Store {
	redisCfg, err := configx.New[statex.UpstashRedisConfig]("UPSTASH_REDIS")
	if err != nil {
		log.Warn().Err(err).Msg("no redis configuration, using in-memory sessions")
		return statex.NewInMemoryStore()
	}
	store, err := statex.NewUpstashRedisStore(*redisCfg)
	if err != nil {
		log.Warn().Err(err).Msg("redis store unavailable, using in-memory sessions")
		return statex.NewInMemoryStore()
	}
	return store
}

// newPlanStore prefers Postgres and falls back to process-local plans.
func newPlanStore(ctx context.Context) planstore.Store {
	pgCfg, err := configx.New[planstore.Config]("PLANSTORE")
	if err != nil {
		log.Warn().Err(err).Msg("no plan database configured, using in-memory plans")
		return planstore.NewInMemoryStore()
	}
	store, err := planstore.NewPostgresStore(ctx, *pgCfg)
	if err != nil {
		log.Warn().Err(err).Msg("plan database unavailable, using in-memory plans")
		return planstore.NewInMemoryStore()
	}
	return store
}

func buildRegistry(
	extractorModel contractx.TextModel,
	advisorModel contractx.TextModel,
	prompts promptx.PromptSet,
	plans planstore.Store,
	memories memory.Store,
) (*intentx.Registry, error) {
	debtOracle := extractx.NewOracle(extractorModel, prompts.DebtExtractor)
	memoryOracle := extractx.NewOracle(extractorModel, prompts.MemoryExtractor)
	fallback := extractx.NewFallback()

	engine := debtplan.NewEngine()
	debtPayoff := executors.NewDebtPayoff(engine, debtOracle, fallback, plans)

	bindings := map[intentx.Intent]contractx.Executor{
		intentx.IntentDebtPayoffPlan: debtPayoff,
		intentx.IntentMonthlySummary: executors.NewMonthlySummary(memories),
		intentx.IntentAdvice:         executors.NewAdvice(advisorModel, memories, plans, prompts.Advisor),
		intentx.IntentOther:          executors.NewConversation(advisorModel, prompts.Advisor),
	}

	memorizers := []struct {
		intent  intentx.Intent
		memType memory.Type
		noun    string
	}{
		{intentx.IntentAddTransaction, memory.TypeTransactions, "transaction"},
		{intentx.IntentUpdateTransaction, memory.TypeTransactions, "transaction update"},
		{intentx.IntentSetBudget, memory.TypeBudgets, "budget"},
		{intentx.IntentCreateGoal, memory.TypeGoals, "goal"},
		{intentx.IntentAddRecurringPayment, memory.TypeRecurringPayments, "recurring payment"},
	}
	for _, m := range memorizers {
		exec, err := executors.NewMemorize(memoryOracle, memories, m.memType, m.noun)
		if err != nil {
			return nil, err
		}
		bindings[m.intent] = exec
	}

	return intentx.NewRegistry(bindings)
}

func runREPL(ctx context.Context, agent *assistant.Assistant, userID string) {
	sessionID := uuid.NewString()
	fmt.Printf("hesab agent ready (session %s). Type a message, or \"exit\" to quit.\n", sessionID)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "exit" || text == "quit" {
			break
		}

		reply, err := agent.HandleMessage(ctx, sessionID, userID, text)
		if err != nil {
			log.Error().Err(err).Msg("turn failed")
			fmt.Println("Sorry, something went wrong with that one. Try again.")
			continue
		}
		fmt.Printf("\n[%s]\n%s\n\n", reply.Intent, reply.Text)
	}

	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("stdin read failed")
	}
}
