package arr

// Series is the subset of a Sonarr series record read by arrtag.
type Series struct {
	ID                  int64   `json:"id"`
	Title               string  `json:"title"`
	SortTitle           string  `json:"sortTitle"`
	Year                int     `json:"year"`
	Path                string  `json:"path"`
	TVDBID              *int64  `json:"tvdbId"`
	IMDBID              *string `json:"imdbId"`
	QualityProfileID    *int64  `json:"qualityProfileId"`
	SeasonFolderEnabled *bool   `json:"seasonFolderEnabled"`
	MetadataProfileID   *int64  `json:"metadataProfileId"`
}

// SeriesUpdate is the body sent with a series edit.
type SeriesUpdate struct {
	Title               string  `json:"title"`
	SortTitle           string  `json:"sortTitle"`
	Year                int     `json:"year"`
	Path                string  `json:"path"`
	TVDBID              *int64  `json:"tvdbId"`
	IMDBID              *string `json:"imdbId"`
	QualityProfileID    *int64  `json:"qualityProfileId"`
	SeasonFolderEnabled bool    `json:"seasonFolderEnabled"`
	MetadataProfileID   *int64  `json:"metadataProfileId"`
}

// UpdateWithPath echoes the series fields back with a new path. A missing
// season folder flag is sent as enabled.
func (s Series) UpdateWithPath(path string) SeriesUpdate {
	seasonFolder := true
	if s.SeasonFolderEnabled != nil {
		seasonFolder = *s.SeasonFolderEnabled
	}
	return SeriesUpdate{
		Title:               s.Title,
		SortTitle:           s.SortTitle,
		Year:                s.Year,
		Path:                path,
		TVDBID:              s.TVDBID,
		IMDBID:              s.IMDBID,
		QualityProfileID:    s.QualityProfileID,
		SeasonFolderEnabled: seasonFolder,
		MetadataProfileID:   s.MetadataProfileID,
	}
}

// Movie is the subset of a Radarr movie record read by arrtag.
type Movie struct {
	ID                int64   `json:"id"`
	Title             string  `json:"title"`
	SortTitle         string  `json:"sortTitle"`
	Year              int     `json:"year"`
	Path              string  `json:"path"`
	TMDBID            *int64  `json:"tmdbId"`
	IMDBID            *string `json:"imdbId"`
	Monitored         *bool   `json:"monitored"`
	QualityProfileID  *int64  `json:"qualityProfileId"`
	MetadataProfileID *int64  `json:"metadataProfileId"`
}

// MovieUpdate is the body sent with a movie edit.
type MovieUpdate struct {
	ID                int64   `json:"id"`
	Title             string  `json:"title"`
	SortTitle         string  `json:"sortTitle"`
	Year              int     `json:"year"`
	TMDBID            *int64  `json:"tmdbId"`
	IMDBID            *string `json:"imdbId"`
	Path              string  `json:"path"`
	Monitored         bool    `json:"monitored"`
	QualityProfileID  *int64  `json:"qualityProfileId"`
	MetadataProfileID *int64  `json:"metadataProfileId"`
}

// UpdateWithPath echoes the movie fields back with a new path. A missing
// monitored flag is sent as true.
func (m Movie) UpdateWithPath(path string) MovieUpdate {
	monitored := true
	if m.Monitored != nil {
		monitored = *m.Monitored
	}
	return MovieUpdate{
		ID:                m.ID,
		Title:             m.Title,
		SortTitle:         m.SortTitle,
		Year:              m.Year,
		TMDBID:            m.TMDBID,
		IMDBID:            m.IMDBID,
		Path:              path,
		Monitored:         monitored,
		QualityProfileID:  m.QualityProfileID,
		MetadataProfileID: m.MetadataProfileID,
	}
}

// SystemStatus is the identity block returned by /api/v3/system/status.
type SystemStatus struct {
	AppName string `json:"appName"`
	Version string `json:"version"`
}
