package cmdline

import "encoding/json"

// AnalyzerArgs configures the cmdline check. RequiredCmdline entries must
// all appear as substrings of the collected command line; BannedCmdline
// entries must all be absent.
type AnalyzerArgs struct {
	RequiredCmdline StringOrSlice `json:"required_cmdline"`
	BannedCmdline   StringOrSlice `json:"banned_cmdline"`
}

// StringOrSlice decodes either a single JSON string or an array of
// strings into a []string, matching the plugin config convention that a
// single-element list may be written without brackets.
type StringOrSlice []string

func (s *StringOrSlice) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringOrSlice{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = StringOrSlice(many)
	return nil
}
