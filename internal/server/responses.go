package server

import "github.com/vanshika/degrees/internal/domain"

type personSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Birth      string `json:"birth,omitempty"`
	MovieCount int    `json:"movieCount"`
}

type peopleResponse struct {
	Name   string          `json:"name"`
	People []personSummary `json:"people"`
}

type movieRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Year  string `json:"year,omitempty"`
}

type personDetail struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Birth  string     `json:"birth,omitempty"`
	Movies []movieRef `json:"movies"`
}

type movieDetail struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Year  string          `json:"year,omitempty"`
	Stars []personSummary `json:"stars"`
}

type hop struct {
	From  personSummary `json:"from"`
	To    personSummary `json:"to"`
	Movie movieRef      `json:"movie"`
}

type neighborsResponse struct {
	PersonID  string `json:"personId"`
	Neighbors []hop  `json:"neighbors"`
}

type degreesResponse struct {
	Source    personSummary `json:"source"`
	Target    personSummary `json:"target"`
	Connected bool          `json:"connected"`
	Degrees   *int          `json:"degrees,omitempty"`
	Path      []hop         `json:"path"`
	Explored  int           `json:"explored"`
}

type ambiguousResponse struct {
	Error      string          `json:"error"`
	Name       string          `json:"name"`
	Candidates []personSummary `json:"candidates"`
}

type batchQuery struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type batchRequest struct {
	Queries []batchQuery `json:"queries"`
}

type batchResult struct {
	Source string           `json:"source"`
	Target string           `json:"target"`
	Result *degreesResponse `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

type batchResponse struct {
	Results []batchResult `json:"results"`
}

func toPersonSummary(p domain.PersonSummary) personSummary {
	return personSummary{ID: p.ID, Name: p.Name, Birth: p.Birth, MovieCount: p.MovieCount}
}

func toMovieRef(m domain.Movie) movieRef {
	return movieRef{ID: m.ID, Title: m.Title, Year: m.Year}
}

func toHop(h domain.Hop) hop {
	return hop{From: toPersonSummary(h.From), To: toPersonSummary(h.To), Movie: toMovieRef(h.Movie)}
}

func toDegreesResponse(conn domain.Connection) degreesResponse {
	resp := degreesResponse{
		Source:    toPersonSummary(conn.Source),
		Target:    toPersonSummary(conn.Target),
		Connected: conn.Connected,
		Path:      make([]hop, 0, len(conn.Hops)),
		Explored:  conn.Explored,
	}
	if conn.Connected {
		d := conn.Degrees()
		resp.Degrees = &d
	}
	for _, h := range conn.Hops {
		resp.Path = append(resp.Path, toHop(h))
	}
	return resp
}
