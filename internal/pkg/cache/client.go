package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client define o contrato do armazenamento de contadores usado pelo rate limiter.
// Resultados de consultas de estoque nunca passam por aqui.
type Client interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// RedisClient é a implementação concreta da interface Client, usando Redis.
type RedisClient struct {
	rdb *redis.Client
}

// NewRedisClient cria o cliente e faz um PING com timeout de 5s.
// O cliente é devolvido mesmo se o PING falhar; quem chama decide o que fazer com o erro.
func NewRedisClient(addr string) (Client, error) {
	client := NewRedisClientFromConn(redis.NewClient(&redis.Options{
		Addr: addr, // Endereço do Redis (e.g., "localhost:6379")
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return client, client.Ping(ctx)
}

// NewRedisClientFromConn embrulha uma conexão já criada (usado nos testes).
func NewRedisClientFromConn(rdb *redis.Client) *RedisClient {
	return &RedisClient{rdb: rdb}
}

// IncrWindow incrementa o contador da janela e devolve o novo valor.
// SET NX EX e INCR vão na mesma transação: a chave nunca existe sem TTL,
// e o TTL não é renovado pelos incrementos seguintes.
func (c *RedisClient) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, window)
		incr = pipe.Incr(ctx, key)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// Ping verifica se o Redis está acessível.
func (c *RedisClient) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close fecha o pool de conexões.
func (c *RedisClient) Close() error {
	return c.rdb.Close()
}
