package pagination

// Metadata is the pagination block of a list response.
type Metadata struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
	StartPage  int   `json:"start_page"`
	EndPage    int   `json:"end_page"`
}

// Response is the JSON envelope for a paginated list.
type Response[T any] struct {
	Data         []T      `json:"data"`
	Pagination   Metadata `json:"pagination"`
	ErrorMessage string   `json:"error_message,omitempty"`
}

// NewMetadata describes w for a list response.
func NewMetadata[T any](w *Window[T]) Metadata {
	return Metadata{
		Total:      w.Total(),
		Page:       w.CurrentPage(),
		PageSize:   PageSize,
		TotalPages: w.TotalPages(),
		StartPage:  w.StartPage(),
		EndPage:    w.EndPage(),
	}
}

func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	if data == nil {
		data = []T{}
	}
	return Response[T]{
		Data:       data,
		Pagination: metadata,
	}
}
