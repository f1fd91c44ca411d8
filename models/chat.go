package models

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message      string `json:"message" binding:"required"`
	Model        string `json:"model"`
	UseRAG       bool   `json:"use_rag"`
	DocumentName string `json:"document_name,omitempty"`
}

// ChatResponse carries the generated answer.
type ChatResponse struct {
	Response string `json:"response"`
}

// IngestResponse reports the outcome of a file or URL ingestion.
type IngestResponse struct {
	Message      string `json:"message"`
	DocumentName string `json:"document_name"`
	ChunkCount   int    `json:"chunk_count"`
}
