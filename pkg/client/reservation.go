package client

import (
	"fmt"
	"net/url"

	"campushub/pkg/model"
)

type ReservationClient struct {
	httpClient *HttpClient
}

func NewReservationClient(baseUrl string) *ReservationClient {
	return &ReservationClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *ReservationClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/reservations", body)
}

func (c *ReservationClient) CreateAs(body any, actor string) (*Response, error) {
	return c.httpClient.POSTWithHeaders("/api/v1/reservations", body, map[string]string{
		"X-Actor": actor,
	})
}

func (c *ReservationClient) GetAll(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/reservations?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *ReservationClient) Search(date string, period string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	q.Set("date", date)
	if period != "" {
		q.Set("period", period)
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	return c.httpClient.GET("/api/v1/reservations/search?" + q.Encode())
}

func (c *ReservationClient) GetByID(id string) (*Response, error) {
	path := "/api/v1/reservations/id/" + url.PathEscape(id)
	return c.httpClient.GET(path)
}

func (c *ReservationClient) Update(id string, body any) (*Response, error) {
	path := "/api/v1/reservations/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(path, body)
}

func (c *ReservationClient) Approve(id string) (*Response, error) {
	path := "/api/v1/reservations/id/" + url.PathEscape(id) + "/approve"
	return c.httpClient.POST(path, nil)
}

func (c *ReservationClient) Cancel(id string) (*Response, error) {
	path := "/api/v1/reservations/id/" + url.PathEscape(id) + "/cancel"
	return c.httpClient.POST(path, nil)
}

func (c *ReservationClient) CheckAvailability(date string, period string, room string, time string) (*Response, error) {
	q := url.Values{}
	q.Set("date", date)
	q.Set("period", period)
	q.Set("room_id", room)
	q.Set("time", time)

	return c.httpClient.GET("/api/v1/reservations/availability?" + q.Encode())
}

func (c *ReservationClient) DecodeReservation(resp *Response) (*model.Reservation, error) {
	var reservation model.Reservation
	if err := decodeWrapped(resp, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (c *ReservationClient) DecodeReservations(resp *Response) ([]*model.Reservation, *Metadata, error) {
	var reservations []*model.Reservation
	metadata, err := decodePaginated(resp, &reservations)
	if err != nil {
		return nil, nil, err
	}
	return reservations, metadata, nil
}
