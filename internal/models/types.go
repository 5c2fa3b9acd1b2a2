package models

type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	Command   string `json:"command"`
}

type DatasetInfo struct {
	Name         string `json:"name"`
	Key          string `json:"key"`
	SizeBytes    int64  `json:"size_bytes"`
	SizeHuman    string `json:"size_human"`
	LastModified string `json:"last_modified"`
}

type DatasetList struct {
	BucketName    string        `json:"bucket_name"`
	Prefix        string        `json:"prefix,omitempty"`
	Datasets      []DatasetInfo `json:"datasets"`
	TotalCount    int           `json:"total_count"`
	OperationTime string        `json:"operation_time"`
}
