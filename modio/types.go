package modio

// List is the envelope returned by every listing endpoint.
type List[T any] struct {
	Data   []T  `json:"data"`
	Offset uint `json:"offset"`
	Limit  uint `json:"limit"`
	Total  uint `json:"total"`
}

// Message is the generic acknowledgement returned by write endpoints.
type Message struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AccessToken is returned by the OAuth email exchange.
type AccessToken struct {
	Code  int    `json:"code"`
	Value string `json:"access_token"`
}

// Game represents a game profile.
type Game struct {
	ID           int64  `json:"id"`
	Status       int    `json:"status"`
	Name         string `json:"name"`
	NameID       string `json:"name_id"`
	Summary      string `json:"summary"`
	Instructions string `json:"instructions"`
	UGCName      string `json:"ugc_name"`
	ProfileURL   string `json:"profile_url"`
	DateAdded    int64  `json:"date_added"`
	DateUpdated  int64  `json:"date_updated"`
	DateLive     int64  `json:"date_live"`
	SubmittedBy  *User  `json:"submitted_by,omitempty"`
}

// Mod represents a mod profile.
type Mod struct {
	ID          int64     `json:"id"`
	GameID      int64     `json:"game_id"`
	Status      int       `json:"status"`
	Visible     int       `json:"visible"`
	Name        string    `json:"name"`
	NameID      string    `json:"name_id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	ProfileURL  string    `json:"profile_url"`
	HomepageURL string    `json:"homepage_url"`
	DateAdded   int64     `json:"date_added"`
	DateUpdated int64     `json:"date_updated"`
	DateLive    int64     `json:"date_live"`
	SubmittedBy *User     `json:"submitted_by,omitempty"`
	Modfile     *File     `json:"modfile,omitempty"`
	Tags        []Tag     `json:"tags,omitempty"`
	Stats       *ModStats `json:"stats,omitempty"`
}

// Tag is a single mod tag.
type Tag struct {
	Name      string `json:"name"`
	DateAdded int64  `json:"date_added"`
}

// ModStats holds aggregate statistics for a mod.
type ModStats struct {
	ModID               int64   `json:"mod_id"`
	PopularityRankPos   int64   `json:"popularity_rank_position"`
	PopularityRankTotal int64   `json:"popularity_rank_total_mods"`
	DownloadsTotal      int64   `json:"downloads_total"`
	SubscribersTotal    int64   `json:"subscribers_total"`
	RatingsTotal        int64   `json:"ratings_total"`
	RatingsPositive     int64   `json:"ratings_positive"`
	RatingsNegative     int64   `json:"ratings_negative"`
	RatingsWeighted     float64 `json:"ratings_weighted_aggregate"`
}

// File represents a modfile release.
type File struct {
	ID            int64    `json:"id"`
	ModID         int64    `json:"mod_id"`
	DateAdded     int64    `json:"date_added"`
	DateScanned   int64    `json:"date_scanned"`
	VirusStatus   int      `json:"virus_status"`
	VirusPositive int      `json:"virus_positive"`
	Filesize      int64    `json:"filesize"`
	Filehash      Filehash `json:"filehash"`
	Filename      string   `json:"filename"`
	Version       string   `json:"version"`
	Changelog     string   `json:"changelog"`
	MetadataBlob  string   `json:"metadata_blob"`
	Download      Download `json:"download"`
}

// Filehash holds checksums of a modfile.
type Filehash struct {
	MD5 string `json:"md5"`
}

// Download holds the pre-signed location of a modfile's binary.
type Download struct {
	BinaryURL   string `json:"binary_url"`
	DateExpires int64  `json:"date_expires"`
}

// User represents a mod.io user.
type User struct {
	ID         int64  `json:"id"`
	NameID     string `json:"name_id"`
	Username   string `json:"username"`
	DateOnline int64  `json:"date_online"`
	ProfileURL string `json:"profile_url"`
}

// Comment represents a comment posted on a mod profile.
type Comment struct {
	ID        int64  `json:"id"`
	ModID     int64  `json:"mod_id"`
	User      *User  `json:"user,omitempty"`
	DateAdded int64  `json:"date_added"`
	ReplyID   int64  `json:"reply_id"`
	ThreadPos string `json:"thread_position"`
	Karma     int    `json:"karma"`
	Content   string `json:"content"`
}

// ErrorEnvelope is the error object inside a non-2xx response body.
type ErrorEnvelope struct {
	Code     int               `json:"code"`
	ErrorRef int               `json:"error_ref"`
	Message  string            `json:"message"`
	Errors   map[string]string `json:"errors"`
}

// errorResponse is the outer wrapper the API puts around ErrorEnvelope.
type errorResponse struct {
	Error ErrorEnvelope `json:"error"`
}
