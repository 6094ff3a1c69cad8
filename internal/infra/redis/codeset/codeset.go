package infra_redis_codeset

import (
	"context"

	"github.com/go-redis/redis"
	"github.com/humanbelnik/matchpoint/core/internal/model"
)

// Driver keeps the set of currently allocated room codes so code
// allocation can probe for collisions without hitting postgres.
type Driver struct {
	client *redis.Client
	key    string
}

func New(
	client *redis.Client,
	key string,
) *Driver {
	return &Driver{
		client: client,
		key:    key,
	}
}

func (d *Driver) Add(ctx context.Context, code model.RoomCode) error {
	if code == model.EmptyRoomCode {
		return nil
	}

	if err := d.client.SAdd(d.key, string(code)).Err(); err != nil {
		return err
	}
	return nil
}

func (d *Driver) Remove(ctx context.Context, codes ...model.RoomCode) error {
	if len(codes) == 0 {
		return nil
	}

	members := make([]interface{}, 0, len(codes))
	for _, code := range codes {
		members = append(members, string(code))
	}

	if err := d.client.SRem(d.key, members...).Err(); err != nil {
		return err
	}
	return nil
}

func (d *Driver) Contains(ctx context.Context, code model.RoomCode) (bool, error) {
	taken, err := d.client.SIsMember(d.key, string(code)).Result()
	if err != nil {
		return false, err
	}
	return taken, nil
}
