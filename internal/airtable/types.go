package airtable

// TokenResponse is the token endpoint response for authorization code and
// personal token exchanges.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	ExpiresIn    int    `json:"expires_in"`
}

// Identity is the response from the whoami endpoint. ID is the stable
// external identity key; everything else is an opaque profile snapshot.
type Identity struct {
	ID     string   `json:"id"`
	Email  string   `json:"email,omitempty"`
	Scopes []string `json:"scopes,omitempty"`
}

// Base is a workspace container visible to the authorized identity.
type Base struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	PermissionLevel string `json:"permissionLevel,omitempty"`
}

// Table is a table inside a base.
type Table struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Fields []Field `json:"fields,omitempty"`
}

// Field is a column definition inside a table.
type Field struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Type    string        `json:"type"`
	Options *FieldOptions `json:"options,omitempty"`
}

// FieldOptions carries select-field choices.
type FieldOptions struct {
	Choices []FieldChoice `json:"choices,omitempty"`
}

// FieldChoice is one selectable option of a select field.
type FieldChoice struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Record is a created or fetched record.
type Record struct {
	ID          string         `json:"id"`
	CreatedTime string         `json:"createdTime,omitempty"`
	Fields      map[string]any `json:"fields"`
}

type basesResponse struct {
	Bases []Base `json:"bases"`
}

type tablesResponse struct {
	Tables []Table `json:"tables"`
}

type recordsRequest struct {
	Records []recordFields `json:"records"`
}

type recordFields struct {
	Fields map[string]any `json:"fields"`
}

type recordsResponse struct {
	Records []Record `json:"records"`
}
