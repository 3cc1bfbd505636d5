package aws

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/vietdv277/sm2env/pkg/types"
)

var (
	credentialsSectionRe = regexp.MustCompile(`^\[([^\]]+)\]$`)
	configSectionRe      = regexp.MustCompile(`^\[profile\s+([^\]]+)\]$`)
	configDefaultRe      = regexp.MustCompile(`^\[default\]$`)
	regionRe             = regexp.MustCompile(`^\s*region\s*=\s*(.+)$`)
)

// ListProfiles reads AWS profiles from ~/.aws/credentials and ~/.aws/config
func ListProfiles() ([]types.AWSProfile, error) {
	profileMap := make(map[string]*types.AWSProfile)

	if credProfiles, err := parseCredentialsFile(); err == nil {
		for _, p := range credProfiles {
			p := p
			profileMap[p.Name] = &p
		}
	}

	// The config file may add region info or SSO-only profiles
	if configProfiles, err := parseConfigFile(); err == nil {
		for _, p := range configProfiles {
			p := p
			if existing, ok := profileMap[p.Name]; ok {
				if existing.Region == "" && p.Region != "" {
					existing.Region = p.Region
				}
			} else {
				profileMap[p.Name] = &p
			}
		}
	}

	var profiles []types.AWSProfile
	for _, p := range profileMap {
		profiles = append(profiles, *p)
	}

	sort.Slice(profiles, func(i, j int) bool {
		// "default" first, then alphabetical
		if profiles[i].Name == "default" {
			return true
		}
		if profiles[j].Name == "default" {
			return false
		}
		return profiles[i].Name < profiles[j].Name
	})

	return profiles, nil
}

// ValidateProfile checks if a profile exists
func ValidateProfile(name string) bool {
	profiles, err := ListProfiles()
	if err != nil {
		return false
	}

	for _, p := range profiles {
		if p.Name == name {
			return true
		}
	}
	return false
}

func parseCredentialsFile() ([]types.AWSProfile, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(home, ".aws", "credentials"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var profiles []types.AWSProfile
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if m := credentialsSectionRe.FindStringSubmatch(scanner.Text()); m != nil {
			profiles = append(profiles, types.AWSProfile{
				Name:   m[1],
				Source: "credentials",
			})
		}
	}

	return profiles, scanner.Err()
}

func parseConfigFile() ([]types.AWSProfile, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(home, ".aws", "config"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var profiles []types.AWSProfile
	var current *types.AWSProfile

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		if m := configSectionRe.FindStringSubmatch(line); m != nil {
			profiles = append(profiles, types.AWSProfile{Name: m[1], Source: "config"})
			current = &profiles[len(profiles)-1]
			continue
		}
		if configDefaultRe.MatchString(line) {
			profiles = append(profiles, types.AWSProfile{Name: "default", Source: "config"})
			current = &profiles[len(profiles)-1]
			continue
		}
		if m := regionRe.FindStringSubmatch(line); m != nil && current != nil {
			current.Region = m[1]
		}
	}

	return profiles, scanner.Err()
}
