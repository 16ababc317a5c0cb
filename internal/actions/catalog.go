package actions

import (
	"net/http"
	"sort"
)

// Kind selects how parameters are encoded on the wire.
type Kind int

const (
	// KindForm posts form-encoded parameters to a v1.1 REST endpoint.
	KindForm Kind = iota
	// KindGraphQL posts {"variables": params, "queryId": id}.
	KindGraphQL
	// KindJSON posts the parameters as a JSON object.
	KindJSON
)

// Host selects the base URL an endpoint lives under.
type Host int

const (
	HostWeb Host = iota
	HostAPI
)

// Definition describes one action: its endpoint, default parameters, the
// parameters a caller must supply, and how response fields are renamed.
type Definition struct {
	Name     string
	Short    string
	Kind     Kind
	Host     Host
	Method   string
	Path     string
	QueryID  string
	Defaults map[string]any
	Required []string
	// Fields maps a client field name to a dotted path in the response.
	Fields map[string]string
	// Destructive actions ask for confirmation in the CLI.
	Destructive bool
}

func userAction(name, short, path string, destructive bool) Definition {
	return Definition{
		Name:   name,
		Short:  short,
		Kind:   KindForm,
		Host:   HostWeb,
		Method: http.MethodPost,
		Path:   path,
		Defaults: map[string]any{
			"include_profile_interstitial_type": "1",
			"skip_status":                       "true",
		},
		Required: []string{"user_id"},
		Fields: map[string]string{
			"user_id":     "id_str",
			"screen_name": "screen_name",
			"name":        "name",
			"following":   "following",
			"blocking":    "blocking",
			"muting":      "muting",
		},
		Destructive: destructive,
	}
}

func tweetMutation(name, short, operation, queryID, idParam string, fields map[string]string) Definition {
	return Definition{
		Name:     name,
		Short:    short,
		Kind:     KindGraphQL,
		Host:     HostWeb,
		Method:   http.MethodPost,
		Path:     "/graphql/" + queryID + "/" + operation,
		QueryID:  queryID,
		Defaults: map[string]any{},
		Required: []string{idParam},
		Fields:   fields,
	}
}

var catalog = map[string]Definition{}

func register(defs ...Definition) {
	for _, d := range defs {
		catalog[d.Name] = d
	}
}

func init() {
	register(
		userAction("follow", "Follow a user", "/1.1/friendships/create.json", false),
		userAction("unfollow", "Unfollow a user", "/1.1/friendships/destroy.json", true),
		userAction("block", "Block a user", "/1.1/blocks/create.json", true),
		userAction("unblock", "Unblock a user", "/1.1/blocks/destroy.json", false),
		userAction("mute", "Mute a user", "/1.1/mutes/users/create.json", true),
		userAction("unmute", "Unmute a user", "/1.1/mutes/users/destroy.json", false),
	)

	retweet := tweetMutation("retweet", "Repost a post", "CreateRetweet", "ojPdsZsimiJrUGLR1sjUtA", "tweet_id", map[string]string{
		"retweet_id": "data.create_retweet.retweet_results.result.rest_id",
		"text":       "data.create_retweet.retweet_results.result.legacy.full_text",
	})
	retweet.Defaults["dark_request"] = false
	unretweet := tweetMutation("unretweet", "Undo a repost", "DeleteRetweet", "iQtK4dl5hBmXewYZuEOKVw", "source_tweet_id", map[string]string{
		"tweet_id": "data.unretweet.source_tweet_results.result.rest_id",
	})
	unretweet.Defaults["dark_request"] = false

	register(
		retweet,
		unretweet,
		tweetMutation("like", "Like a post", "FavoriteTweet", "lI07N6Otwv1PhnEgXILM7A", "tweet_id", map[string]string{
			"status": "data.favorite_tweet",
		}),
		tweetMutation("unlike", "Remove a like", "UnfavoriteTweet", "ZYKSe-w7KEslx3JhSIk5LA", "tweet_id", map[string]string{
			"status": "data.unfavorite_tweet",
		}),
		tweetMutation("bookmark", "Bookmark a post", "CreateBookmark", "aoDbu3RHznuiSkQ9aNM67Q", "tweet_id", map[string]string{
			"status": "data.tweet_bookmark_put",
		}),
		tweetMutation("unbookmark", "Remove a bookmark", "DeleteBookmark", "Wlmlj2-xzyS1GN3a6cj-mQ", "tweet_id", map[string]string{
			"status": "data.tweet_bookmark_delete",
		}),
		Definition{
			Name:     TranslateAction,
			Short:    "Translate a post",
			Kind:     KindJSON,
			Host:     HostAPI,
			Method:   http.MethodPost,
			Path:     "/2/grok/translation.json",
			Defaults: map[string]any{"content_type": "POST"},
			Required: []string{"id", "dst_lang"},
			Fields: map[string]string{
				"text":         "result.text",
				"content_type": "result.content_type",
				"entities":     "result.entities",
			},
		},
	)
}

// TranslateAction is the name of the translation action.
const TranslateAction = "translate"

// Lookup returns the definition registered under name.
func Lookup(name string) (Definition, bool) {
	d, ok := catalog[name]
	return d, ok
}

// Names lists every action name in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IDParam is the first required parameter, used as the positional CLI argument.
func (d Definition) IDParam() string {
	if len(d.Required) == 0 {
		return ""
	}
	return d.Required[0]
}
