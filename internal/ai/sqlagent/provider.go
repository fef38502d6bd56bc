package sqlagent

import (
	"os"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"

	"github.com/iiTzGuzz/LLMSDATA/etl/registro/registrosrv"
)

// Provider builds the agent lazily so the server can boot without an
// OpenAI key; only the consulta endpoint fails until the key appears.
type Provider struct {
	mu      sync.Mutex
	agent   *Agent
	db      *sqlx.DB
	service *registrosrv.RegistroService
	cache   *redis.Client
}

func NewProvider(db *sqlx.DB, service *registrosrv.RegistroService, cache *redis.Client) *Provider {
	return &Provider{db: db, service: service, cache: cache}
}

// Get returns the shared agent, constructing it on first use. A missing
// key is reported per call and retried on the next one.
func (p *Provider) Get() (*Agent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.agent != nil {
		return p.agent, nil
	}
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrAgentUnavailable()
	}
	p.agent = NewAgent(apiKey, p.db, p.service, p.cache)
	return p.agent, nil
}
