package azure

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/redis/armredis/v3"
)

// CreateOrUpdateSchedule replaces the patch schedule of a cache with entries.
func (c *RealClient) CreateOrUpdateSchedule(ctx context.Context, cache *Cache, entries []ScheduleEntry) (_ *Schedule, err error) {
	defer c.metrics.observe("schedule_create_or_update", time.Now(), &err)

	armEntries := make([]*armredis.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		armEntries = append(armEntries, &armredis.ScheduleEntry{
			DayOfWeek:         to.Ptr(dayOfWeek(e.Day)),
			StartHourUTC:      to.Ptr(e.StartHourUTC),
			MaintenanceWindow: to.Ptr(FormatISODuration(e.MaintenanceWindow)),
		})
	}

	resp, err := c.schedules.CreateOrUpdate(ctx, cache.ResourceGroup, cache.Name, armredis.DefaultNameDefault,
		armredis.PatchSchedule{
			Properties: &armredis.ScheduleEntries{ScheduleEntries: armEntries},
		}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to set patch schedule for %s: %w", cache.Name, err)
	}

	return scheduleFromARM(&resp.PatchSchedule)
}

// ListSchedules returns the patch schedules of a cache.
func (c *RealClient) ListSchedules(ctx context.Context, cache *Cache) (_ []*Schedule, err error) {
	defer c.metrics.observe("schedule_list", time.Now(), &err)

	pager := c.schedules.NewListByRedisResourcePager(cache.ResourceGroup, cache.Name, nil)

	var result []*Schedule
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list patch schedules for %s: %w", cache.Name, err)
		}
		for _, ps := range page.Value {
			s, err := scheduleFromARM(ps)
			if err != nil {
				return nil, err
			}
			result = append(result, s)
		}
	}
	return result, nil
}

func scheduleFromARM(ps *armredis.PatchSchedule) (*Schedule, error) {
	s := &Schedule{
		ID:   toValue(ps.ID),
		Name: toValue(ps.Name),
	}
	if ps.Properties == nil {
		return s, nil
	}
	for _, e := range ps.Properties.ScheduleEntries {
		if e == nil {
			continue
		}
		window, err := ParseISODuration(toValue(e.MaintenanceWindow))
		if err != nil {
			return nil, fmt.Errorf("schedule %s: %w", s.Name, err)
		}
		day, err := weekday(toValue(e.DayOfWeek))
		if err != nil {
			return nil, fmt.Errorf("schedule %s: %w", s.Name, err)
		}
		s.Entries = append(s.Entries, ScheduleEntry{
			Day:               day,
			StartHourUTC:      toValue(e.StartHourUTC),
			MaintenanceWindow: window,
		})
	}
	return s, nil
}

func dayOfWeek(d time.Weekday) armredis.DayOfWeek {
	return armredis.DayOfWeek(d.String())
}

func weekday(d armredis.DayOfWeek) (time.Weekday, error) {
	for w := time.Sunday; w <= time.Saturday; w++ {
		if string(d) == w.String() {
			return w, nil
		}
	}
	return 0, fmt.Errorf("unsupported schedule day %q", d)
}

// FormatISODuration renders d as an ISO 8601 duration such as "PT5H" or
// "PT1H30M". Sub-second precision is dropped.
func FormatISODuration(d time.Duration) string {
	if d <= 0 {
		return "PT0S"
	}

	d = d.Truncate(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	var b strings.Builder
	b.WriteString("PT")
	if h > 0 {
		b.WriteString(strconv.FormatInt(int64(h), 10) + "H")
	}
	if m > 0 {
		b.WriteString(strconv.FormatInt(int64(m), 10) + "M")
	}
	if s > 0 {
		b.WriteString(strconv.FormatInt(int64(s), 10) + "S")
	}
	if b.Len() == 2 {
		b.WriteString("0S")
	}
	return b.String()
}

// ParseISODuration parses the time-only ISO 8601 durations returned by ARM,
// for example "PT5H" or "PT1H30M". Day components ("P1D", "P1DT2H") are
// accepted as 24 hours each.
func ParseISODuration(s string) (time.Duration, error) {
	rest, ok := strings.CutPrefix(strings.ToUpper(s), "P")
	if !ok || rest == "" {
		return 0, fmt.Errorf("invalid ISO 8601 duration %q", s)
	}

	var total time.Duration
	datePart, timePart, hasTime := strings.Cut(rest, "T")
	if datePart != "" {
		n, unit, err := splitDurationComponent(datePart)
		if err != nil || unit != "D" {
			return 0, fmt.Errorf("invalid ISO 8601 duration %q", s)
		}
		total += time.Duration(n) * 24 * time.Hour
	}
	if hasTime && timePart == "" {
		return 0, fmt.Errorf("invalid ISO 8601 duration %q", s)
	}

	units := map[string]time.Duration{"H": time.Hour, "M": time.Minute, "S": time.Second}
	for timePart != "" {
		i := strings.IndexAny(timePart, "HMS")
		if i <= 0 {
			return 0, fmt.Errorf("invalid ISO 8601 duration %q", s)
		}
		n, err := strconv.ParseInt(timePart[:i], 10, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid ISO 8601 duration %q", s)
		}
		total += time.Duration(n) * units[timePart[i:i+1]]
		timePart = timePart[i+1:]
	}
	return total, nil
}

func splitDurationComponent(s string) (int64, string, error) {
	if len(s) < 2 {
		return 0, "", fmt.Errorf("invalid component %q", s)
	}
	n, err := strconv.ParseInt(s[:len(s)-1], 10, 64)
	if err != nil {
		return 0, "", err
	}
	return n, s[len(s)-1:], nil
}
