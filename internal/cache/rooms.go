package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/campushub/campushub/internal/model"
)

const (
	// roomChannelPrefix is the Redis pub/sub channel prefix for group rooms.
	roomChannelPrefix = "room:"
)

// RoomChannel returns the pub/sub channel name for a group room.
func RoomChannel(groupID string) string {
	return roomChannelPrefix + groupID
}

// PublishMessage fans a chat message out to the group's room channel.
// Delivery to connected subscribers is the realtime transport's concern;
// the message is already persisted before this is called.
func (c *Cache) PublishMessage(ctx context.Context, msg *model.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	if err := c.client.Publish(ctx, RoomChannel(msg.GroupID), payload).Err(); err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}
