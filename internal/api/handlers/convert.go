package handlers

import (
	"strings"

	"github.com/jroosing/hydrazone/internal/api/models"
	"github.com/jroosing/hydrazone/internal/dns"
	"github.com/jroosing/hydrazone/internal/rrset"
	"github.com/jroosing/hydrazone/internal/zone"
)

// toChanges converts wire RRsets into change directives. Type and changetype
// checks beyond parsing are left to the engine so every request path shares
// one set of rules.
func toChanges(sets []models.RRSet, defaultKind zone.ChangeKind) ([]zone.Change, error) {
	changes := make([]zone.Change, 0, len(sets))
	for _, s := range sets {
		var typ dns.Type
		if strings.TrimSpace(s.Type) != "" {
			t, err := dns.ParseType(s.Type)
			if err != nil {
				return nil, &zone.ValidationError{Name: s.Name, Type: strings.ToUpper(s.Type), Message: "Unsupported record type"}
			}
			typ = t
		}

		kind := zone.ChangeKind(strings.ToUpper(strings.TrimSpace(s.Changetype)))
		if kind == "" {
			kind = defaultKind
		}

		c := zone.Change{Name: s.Name, Type: typ, TTL: s.TTL, Kind: kind}
		for _, r := range s.Records {
			c.Records = append(c.Records, zone.ChangeRecord{
				Content:  r.Content,
				Disabled: r.Disabled,
				Priority: r.Priority,
			})
		}
		changes = append(changes, c)
	}
	return changes, nil
}

func toCreateRequest(req models.ZoneCreateRequest) (rrset.CreateRequest, error) {
	kind, err := zone.ParseKind(req.Kind)
	if err != nil {
		return rrset.CreateRequest{}, &zone.ValidationError{Name: req.Name, Message: err.Error()}
	}
	// Directives without a changetype in a create body mean "these records".
	changes, err := toChanges(req.RRsets, zone.ChangeReplace)
	if err != nil {
		return rrset.CreateRequest{}, err
	}

	out := rrset.CreateRequest{
		Name:        req.Name,
		Kind:        kind,
		Account:     req.Account,
		Masters:     req.Masters,
		Nameservers: req.Nameservers,
		TTL:         req.TTL,
		RRsets:      changes,
		ZoneText:    req.ZoneText,
	}
	if o := req.SOA; o != nil {
		out.SOA = &rrset.SOAOverride{
			PrimaryNS:  o.PrimaryNS,
			Hostmaster: o.Hostmaster,
			Refresh:    o.Refresh,
			Retry:      o.Retry,
			Expire:     o.Expire,
			Minimum:    o.Minimum,
		}
	}
	return out, nil
}

func (h *Handler) zoneURL(name string) string {
	return h.serverURL() + "/zones/" + name
}

// zoneObject renders z without RRsets.
func (h *Handler) zoneObject(z *zone.Zone) models.Zone {
	masters := z.Masters
	if masters == nil {
		masters = []string{}
	}
	return models.Zone{
		ID:             z.Name,
		Name:           z.Name,
		Type:           "Zone",
		URL:            h.zoneURL(z.Name),
		Kind:           string(z.Kind),
		Serial:         z.Serial,
		NotifiedSerial: z.NotifiedSerial,
		Masters:        masters,
		Account:        z.Account,
	}
}

func toRRsets(records []zone.Record) []models.RRSet {
	grouped := zone.GroupRRsets(records)
	out := make([]models.RRSet, 0, len(grouped))
	for _, g := range grouped {
		ttl := g.TTL
		set := models.RRSet{
			Name:     g.Name,
			Type:     g.Type.String(),
			TTL:      &ttl,
			Records:  make([]models.Record, 0, len(g.Records)),
			Comments: []any{},
		}
		for _, r := range g.Records {
			set.Records = append(set.Records, models.Record{
				Content:   r.Content,
				Disabled:  r.Disabled,
				Priority:  r.Priority,
				Flattened: g.Flattened,
			})
		}
		out = append(out, set)
	}
	return out
}
