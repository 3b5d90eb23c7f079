package room_api_client

import (
	"github.com/spookyvote/costume-clash/go/clients"
)

type RoomApiClient struct {
	*clients.BaseClient
}

func NewRoomApiClient(baseURL string) *RoomApiClient {
	client := &RoomApiClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}

	// The party backend is usually exposed through an ngrok tunnel; this
	// header skips the interstitial warning page that would otherwise be
	// returned instead of JSON.
	client.SetHeader(NgrokSkipWarningHeader, "true")

	return client
}
