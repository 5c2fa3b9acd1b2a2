package models

type TransferResult struct {
	Dataset     string `json:"dataset"`
	ArchivePath string `json:"archive_path,omitempty"`
	Succeeded   bool   `json:"succeeded"`
}

type ExtractInfo struct {
	ArchivePath    string `json:"archive_path"`
	DestinationDir string `json:"destination_dir"`
	Members        int    `json:"members"`
	TotalSizeBytes int64  `json:"total_size_bytes"`
	TotalSizeHuman string `json:"total_size_human"`
}

type FileEntry struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	SizeHuman string `json:"size_human"`
}

type FetchReport struct {
	Dataset        string      `json:"dataset"`
	DownloadDir    string      `json:"download_dir"`
	Succeeded      bool        `json:"succeeded"`
	Extracted      bool        `json:"extracted"`
	Files          []FileEntry `json:"files"`
	TotalFiles     int         `json:"total_files"`
	TotalSizeBytes int64       `json:"total_size_bytes"`
	TotalSizeHuman string      `json:"total_size_human"`
	OperationTime  string      `json:"operation_time"`
	FetchDuration  string      `json:"fetch_duration"`
}
