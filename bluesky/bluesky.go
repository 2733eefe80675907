// Package bluesky is a minimal AT Protocol XRPC client. It covers the
// endpoints the library needs: session creation, record creation and
// retrieval, blob upload, handle resolution, and the Bluesky chat
// (direct message) endpoints.
package bluesky

import "errors"

// Default service endpoints.
const (
	DefaultPDS         = "https://bsky.social"
	DefaultChatService = "https://api.bsky.chat"
)

// XRPC paths.
const (
	createSessionPath = "/xrpc/com.atproto.server.createSession"
	createRecordPath  = "/xrpc/com.atproto.repo.createRecord"
	getRecordPath     = "/xrpc/com.atproto.repo.getRecord"
	uploadBlobPath    = "/xrpc/com.atproto.repo.uploadBlob"
	resolveHandlePath = "/xrpc/com.atproto.identity.resolveHandle"
	listConvosPath    = "/xrpc/chat.bsky.convo.listConvos"
	getMessagesPath   = "/xrpc/chat.bsky.convo.getMessages"
	sendMessagePath   = "/xrpc/chat.bsky.convo.sendMessage"
)

// PostCollection is the NSID of the post record collection.
const PostCollection = "app.bsky.feed.post"

var (
	// ErrNotAuthenticated is returned when an operation that requires a
	// session is attempted before Login.
	ErrNotAuthenticated = errors.New("not authenticated: call Login first")

	// ErrInvalidHandle is returned by ResolveHandle when the service
	// rejects the handle as unresolvable (HTTP 400). Callers that treat
	// unresolvable handles as recoverable match it with errors.Is.
	ErrInvalidHandle = errors.New("invalid user handle")
)

// BlobRef is an AT Protocol blob reference for uploaded content.
type BlobRef struct {
	Type     string   `json:"$type"`
	Ref      BlobLink `json:"ref"`
	MimeType string   `json:"mimeType"`
	Size     int      `json:"size"`
}

// BlobLink is the CID link inside a blob reference.
type BlobLink struct {
	Link string `json:"$link"`
}

// RecordRef identifies a created record.
type RecordRef struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

// StrongRef is a reference to a specific version of a record.
type StrongRef struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

// ReplyRef carries the root and parent references of a reply chain.
type ReplyRef struct {
	Root   StrongRef `json:"root"`
	Parent StrongRef `json:"parent"`
}

// ConvoView is a conversation as returned by chat.bsky.convo.listConvos.
type ConvoView struct {
	ID          string        `json:"id"`
	Members     []ConvoMember `json:"members"`
	UnreadCount int           `json:"unreadCount"`
	Opened      bool          `json:"opened"`
	LastMessage *MessageView  `json:"lastMessage,omitempty"`
}

// ConvoMember is a participant in a conversation.
type ConvoMember struct {
	DID    string `json:"did"`
	Handle string `json:"handle"`
}

// MessageView is a direct message as returned by the chat endpoints.
type MessageView struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	SentAt string `json:"sentAt"`
}
