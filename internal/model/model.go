package model

// Movie is a film summary record stored in the movies table, keyed by movieId.
type Movie struct {
	MovieID string `json:"movieId" dynamodbav:"movieId"`
	Title   string `json:"title" dynamodbav:"title"`
	Created string `json:"created" dynamodbav:"created"`
	Deleted *bool  `json:"deleted,omitempty" dynamodbav:"deleted,omitempty"`
}

// MovieDetail is the extended metadata record stored in the movie_details
// table. The table is keyed by movieId; movieDetailId is an extra attribute
// stamped by the direct-create path and is not the table key, so a record
// created directly without a movieId cannot be fetched by movieId afterwards.
type MovieDetail struct {
	MovieDetailID string   `json:"movieDetailId,omitempty" dynamodbav:"movieDetailId,omitempty"`
	MovieID       string   `json:"movieId" dynamodbav:"movieId"`
	Synopsis      string   `json:"synopsis" dynamodbav:"synopsis"`
	Cast          []string `json:"cast" dynamodbav:"cast"`
	Duration      int      `json:"duration" dynamodbav:"duration"`
	Genre         []string `json:"genre" dynamodbav:"genre"`
	Rating        string   `json:"rating" dynamodbav:"rating"`
	ReleaseDate   string   `json:"releaseDate" dynamodbav:"releaseDate"`
	Created       string   `json:"created" dynamodbav:"created"`
	Deleted       *bool    `json:"deleted,omitempty" dynamodbav:"deleted,omitempty"`
}

// MoviePatch carries the fields a partial movie update may change.
// Deleted is a pointer so an explicit false stays distinguishable from absent.
type MoviePatch struct {
	Title   string `json:"title"`
	Deleted *bool  `json:"deleted"`
}

// MovieDetailPatch carries the fields a partial detail update may change.
type MovieDetailPatch struct {
	Synopsis string   `json:"synopsis"`
	Cast     []string `json:"cast"`
	Deleted  *bool    `json:"deleted"`
}
