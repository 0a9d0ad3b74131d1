package producer

import (
	"encoding/json"

	"hr-service/internal/events"
)

const (
	HeaderEventType       = "event_type"
	HeaderDeduplicationID = "deduplication_id"
	HeaderContentType     = "content-type"

	contentTypeJSON = "application/json"
)

// encodedEvent is the transport-neutral form of a lifecycle event. Both
// publishers key messages by pessoaId so one record's events stay in order
// within a partition.
type encodedEvent struct {
	key     []byte
	value   []byte
	headers map[string]string
}

func encodeEvent(event events.FuncionarioEvent) (encodedEvent, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return encodedEvent{}, err
	}

	return encodedEvent{
		key:   []byte(event.PessoaID),
		value: value,
		headers: map[string]string{
			HeaderEventType:       string(event.Type),
			HeaderDeduplicationID: event.DeduplicationID(),
			HeaderContentType:     contentTypeJSON,
		},
	}, nil
}

// headerOrder keeps header output stable for consumers and tests.
var headerOrder = []string{HeaderEventType, HeaderDeduplicationID, HeaderContentType}

func publishError(event events.FuncionarioEvent, err error) error {
	return &events.PublishError{Type: event.Type, PessoaID: event.PessoaID, Err: err}
}
