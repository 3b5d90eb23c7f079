package room_api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

type Player struct {
	PlayerID          string `json:"player_id"`
	Name              string `json:"name"`
	CostumeUploaded   bool   `json:"costume_uploaded"`
	HasFinishedVoting bool   `json:"has_finished_voting,omitempty"`
}

type RoomResponse struct {
	RoomCode string   `json:"room_code"`
	Status   string   `json:"status"`
	HostID   string   `json:"host_id"`
	Players  []Player `json:"players"`
}

type CreateRoomResponse struct {
	Success  bool   `json:"success"`
	RoomCode string `json:"room_code"`
	Error    string `json:"error,omitempty"`
}

type JoinRoomResponse struct {
	Success  bool   `json:"success"`
	PlayerID string `json:"player_id"`
	IsHost   bool   `json:"is_host"`
	Error    string `json:"error,omitempty"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// GetRoom fetches the current room record: status plus the player roster.
func (c *RoomApiClient) GetRoom(ctx context.Context, roomCode string) (*RoomResponse, error) {
	body, err := c.Get(ctx, fmt.Sprintf("%s/%s", RoomEndpoint, roomCode))
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	var response RoomResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	return &response, nil
}

// CreateRoom asks the server to allocate a new room and returns its code.
func (c *RoomApiClient) CreateRoom(ctx context.Context) (string, error) {
	body, err := c.Post(ctx, CreateRoomEndpoint, bytes.NewReader([]byte("{}")))
	if err != nil {
		return "", fmt.Errorf("failed to create room: %w", err)
	}

	var response CreateRoomResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}
	if !response.Success {
		return "", fmt.Errorf("create room rejected: %s", response.Error)
	}

	return response.RoomCode, nil
}

// JoinRoom registers a player in a room. imageData is an optional base64
// data URL with the player's costume photo.
func (c *RoomApiClient) JoinRoom(ctx context.Context, roomCode, playerName, imageData string) (*JoinRoomResponse, error) {
	payload := map[string]string{
		"room_code":   roomCode,
		"player_name": playerName,
	}
	if imageData != "" {
		payload["image_data"] = imageData
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal join payload: %w", err)
	}

	body, err := c.Post(ctx, JoinRoomEndpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to join room: %w", err)
	}

	var response JoinRoomResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}
	if !response.Success {
		return nil, fmt.Errorf("join rejected: %s", response.Error)
	}

	return &response, nil
}

// VerifyRoom reports whether a room code refers to an existing room.
func (c *RoomApiClient) VerifyRoom(ctx context.Context, roomCode string) error {
	data, err := json.Marshal(map[string]string{"room_code": roomCode})
	if err != nil {
		return fmt.Errorf("failed to marshal verify payload: %w", err)
	}

	body, err := c.Post(ctx, VerifyRoomEndpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to verify room: %w", err)
	}

	var response successResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}
	if !response.Success {
		return fmt.Errorf("verify rejected: %s", response.Error)
	}

	return nil
}

// StartGame moves the room from waiting to playing. Host only.
func (c *RoomApiClient) StartGame(ctx context.Context, roomCode string) error {
	body, err := c.Post(ctx, fmt.Sprintf("%s/%s", StartGameEndpoint, roomCode), nil)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	var response successResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}
	if !response.Success {
		return fmt.Errorf("start game rejected: %s", response.Error)
	}

	return nil
}

// DeleteRoom removes the room record on the server.
func (c *RoomApiClient) DeleteRoom(ctx context.Context, roomCode string) error {
	body, err := c.Delete(ctx, fmt.Sprintf("%s/%s", DeleteRoomEndpoint, roomCode))
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	var response successResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}
	if !response.Success {
		return fmt.Errorf("delete room rejected: %s", response.Error)
	}

	return nil
}
